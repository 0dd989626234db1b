package session

import (
	"context"

	"github.com/google/uuid"
)

// Data is what the server keeps per authenticated session. Key names on
// the wire stay compatible with the previous deployment (userNom).
type Data struct {
	UserID int64  `json:"userId"`
	Email  string `json:"userEmail"`
	Role   string `json:"userRole"`
	Nom    string `json:"userNom"`
}

// Store is the per-request session capability. Get returns (nil, nil) for
// an unknown or expired id.
type Store interface {
	Set(ctx context.Context, id string, d Data) error
	Get(ctx context.Context, id string) (*Data, error)
	Invalidate(ctx context.Context, id string) error
}

func NewID() string { return uuid.NewString() }
