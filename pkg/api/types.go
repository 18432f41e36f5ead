package api

import (
	"time"

	"github.com/goran-ethernal/MercuryBridge/pkg/ledger"
)

// SubscriptionBody is the body of POST /subscription. Fields other than the
// ones listed here are forwarded to the indexing service unchanged.
type SubscriptionBody struct {
	ContractID    string `json:"contract_id,omitempty" jsonschema:"description=Soroban contract to watch"`
	MaxSingleSize int    `json:"max_single_size" jsonschema:"description=Maximum size of a single event"`
	Topic1        string `json:"topic1,omitempty" jsonschema:"description=Base64 XDR ScVal topic filter"`
	Topic2        string `json:"topic2,omitempty"`
	Topic3        string `json:"topic3,omitempty"`
	Topic4        string `json:"topic4,omitempty"`
}

// TokenSubscriptionBody is the body of POST /subscription/token.
type TokenSubscriptionBody struct {
	ContractID string `json:"contract_id" jsonschema:"minLength=1,description=Token contract id"`
	PubKey     string `json:"pub_key" jsonschema:"minLength=1,description=Account public key"`
}

// AccountSubscriptionBody is the body of POST /subscription/account.
type AccountSubscriptionBody struct {
	PubKey string `json:"pub_key" jsonschema:"minLength=1,description=Account public key"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind"`
	Op      string   `json:"op,omitempty"`
	Details []string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	LedgerEnabled bool      `json:"ledger_enabled"`
}

// LedgerResponse is a page of recorded write attempts.
type LedgerResponse struct {
	Entries    []ledger.Entry   `json:"entries"`
	Pagination PaginationResult `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}
