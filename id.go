package ledger

import "github.com/google/uuid"

// NewID returns a collision-resistant unique id for an entity or sub-entity.
func NewID() string { return uuid.NewString() }
