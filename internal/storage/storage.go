// Package storage persists campaign state documents. Two backends exist:
// flat JSON files (the default) and Redis. Persistence is atomic at the
// document level; a partially written document is never observable.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// Storage is the campaign document store. One campaign, one document,
// one writer at a time.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveCampaign(ctx context.Context, id uuid.UUID, cs *state.CampaignState) error
	// LoadCampaign returns (nil, nil) when the campaign does not exist.
	LoadCampaign(ctx context.Context, id uuid.UUID) (*state.CampaignState, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
	ListCampaigns(ctx context.Context) ([]uuid.UUID, error)
}

// StoreUnavailableError means the underlying store could not be reached.
// Fatal: callers abort the session.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// DocumentCorruptError means no decoding of the stored bytes yielded valid
// structured data. Fatal: the message names the offending key.
type DocumentCorruptError struct {
	Key string
	Err error
}

func (e *DocumentCorruptError) Error() string {
	return fmt.Sprintf("campaign document corrupt at %s: %v", e.Key, e.Err)
}

func (e *DocumentCorruptError) Unwrap() error { return e.Err }
