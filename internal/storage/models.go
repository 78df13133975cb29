package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is one content item. Data holds the item's fields as a JSON object;
// the id and timestamps live in their own columns.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Resource  string          `json:"resource"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reader comment attached to a record.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Resource  string    `json:"resource"`
	RecordID  uuid.UUID `json:"record_id"`
	Autor     string    `json:"autor"`
	Contenido string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha"`
}
