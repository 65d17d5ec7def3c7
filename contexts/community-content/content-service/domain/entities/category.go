package entities

import "time"

type Category struct {
	CategoryID string
	Title      string
	OwnerID    string
	CreatedAt  time.Time
}
