package model

import (
	"encoding/json"
	"time"
)

// Event describes one committed mutation of a resource.
type Event struct {
	Resource string          `json:"resource"`
	Action   string          `json:"action"`
	ID       string          `json:"id"`
	Record   json.RawMessage `json:"record,omitempty"`
	Origin   string          `json:"origin"`
	At       time.Time       `json:"at"`
}
