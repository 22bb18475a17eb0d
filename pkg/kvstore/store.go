// Package kvstore is a key-value document store. Every table maps a string
// key to a flat map of named attributes.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete when no item exists under the key.
var ErrNotFound = errors.New("item not found")

// Item is a flat map of attribute name to value. Values are strings,
// float64 numbers or bools. An attribute that was never set is absent from
// the map rather than stored as an empty value.
type Item map[string]any

// Table names a table and the attributes Query may filter on.
type Table struct {
	Name    string
	Indexes []string
}

func (t Table) indexed(attr string) bool {
	for _, idx := range t.Indexes {
		if idx == attr {
			return true
		}
	}
	return false
}

// Store is implemented by every backend. Put is an unconditional upsert.
// No operation spans more than one table.
type Store interface {
	Get(ctx context.Context, table Table, key string) (Item, error)
	Put(ctx context.Context, table Table, key string, item Item) error
	Delete(ctx context.Context, table Table, key string) error
	// Query returns the items whose attr equals value. attr must be one of
	// table.Indexes.
	Query(ctx context.Context, table Table, attr, value string) ([]Item, error)
	EnsureTable(ctx context.Context, table Table) error
	Ping(ctx context.Context) error
	Close() error
}

// ErrNotIndexed is returned by Query for an attribute outside table.Indexes.
var ErrNotIndexed = errors.New("attribute is not indexed")
