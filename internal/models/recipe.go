package models

import (
	"time"
)

type Recipe struct {
	ID                int64
	CreatedAt         time.Time
	Title             string
	Instructions      string
	MinutesToComplete *int32
	UserID            int64

	// Owning user. Populated on reads that join users, zero otherwise.
	User User
}
