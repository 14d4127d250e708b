package site

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("site: job not found")
	// ErrAnnotation marks failures of the tagging or summarization models.
	ErrAnnotation = errors.New("site: annotation failed")
)

// Job records one generated portfolio.
type Job struct {
	ID           string    `json:"jobId"`
	OwnerID      uuid.UUID `json:"ownerId,omitempty"`
	Filename     string    `json:"filename"`
	Theme        string    `json:"theme"`
	PrimaryColor string    `json:"primaryColor"`
	Bio          string    `json:"bio"`
	Skills       []string  `json:"skills"`
	PageCount    int       `json:"pageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Anonymous reports whether the job was generated without an account.
func (j Job) Anonymous() bool { return j.OwnerID == uuid.Nil }

// Repository хранит историю генераций.
type Repository interface {
	Create(ctx context.Context, j Job) error
	Get(ctx context.Context, id string) (Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	// returns the deleted record for file cleanup
	DeleteForOwner(ctx context.Context, ownerID uuid.UUID, id string) (Job, error)
}
