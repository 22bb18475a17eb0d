package repository

import (
	"fmt"
	"time"

	"restaurant-review/pkg/kvstore"
)

// ErrNotFound is returned (possibly wrapped) when a keyed lookup misses.
var ErrNotFound = kvstore.ErrNotFound

// Tables
var (
	UserTable       = kvstore.Table{Name: "users", Indexes: []string{"email"}}
	RestaurantTable = kvstore.Table{Name: "restaurants"}
	ReviewTable     = kvstore.Table{Name: "reviews", Indexes: []string{"username", "restaurant_id"}}
	SessionTable    = kvstore.Table{Name: "sessions", Indexes: []string{"username"}}
)

// Tables lists every table the application owns, for bootstrap.
func Tables() []kvstore.Table {
	return []kvstore.Table{UserTable, RestaurantTable, ReviewTable, SessionTable}
}

const timestampLayout = time.RFC3339Nano

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func stringAttr(item kvstore.Item, name string) string {
	s, _ := item[name].(string)
	return s
}

func optionalStringAttr(item kvstore.Item, name string) *string {
	s, ok := item[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func floatAttr(item kvstore.Item, name string) float64 {
	switch v := item[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func boolAttr(item kvstore.Item, name string) bool {
	b, _ := item[name].(bool)
	return b
}

func timeAttr(item kvstore.Item, name string) (time.Time, error) {
	raw := stringAttr(item, name)
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", name, raw, err)
	}
	return t.UTC(), nil
}
