package entity

import "time"

type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
