package entity

import "time"

// Stat is one durable (die, roll) aggregate row.
type Stat struct {
	Die       int       `json:"die"`
	Roll      int       `json:"roll"`
	RollCount int64     `json:"roll_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatsResponse struct {
	Stats []Stat `json:"stats"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
