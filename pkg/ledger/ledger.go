package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goran-ethernal/MercuryBridge/pkg/mercury"
)

// DefaultListLimit is the page size used when a listing does not set one.
const DefaultListLimit = 50

// MaxListLimit caps the page size of a listing.
const MaxListLimit = 500

// Entry is one recorded write-channel attempt.
type Entry struct {
	ID         int64                       `json:"id"`
	Operation  string                      `json:"operation"`
	Label      string                      `json:"label,omitempty"`
	ContractID string                      `json:"contract_id,omitempty"`
	Request    mercury.SubscriptionRequest `json:"request"`
	Response   json.RawMessage             `json:"response,omitempty"`
	Accepted   bool                        `json:"accepted"`
	Error      string                      `json:"error,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// Reader lists recorded attempts, newest first.
type Reader interface {
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}

// Ledger records write-channel attempts and serves them back.
type Ledger interface {
	mercury.AttemptRecorder
	Reader

	// Prune deletes the attempts recorded before the given time and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)

	// Close releases the underlying database.
	Close() error
}
