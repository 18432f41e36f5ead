package mercury

import (
	"context"
	"encoding/json"
)

// QueryChannel executes GraphQL queries and mutations against the indexing service.
type QueryChannel interface {
	// Execute runs req and decodes the response data into out.
	Execute(ctx context.Context, req Request, out any) error
}

// WriteChannel creates subscriptions on the indexing service.
type WriteChannel interface {
	// PostSubscription posts body with the given bearer token and returns the raw response payload.
	PostSubscription(ctx context.Context, token string, body any) (json.RawMessage, error)
}

// Client is the subscription orchestration client.
// Every operation returns a Result and never panics.
type Client interface {
	// RenewToken authenticates with the configured credentials and stores the new token.
	RenewToken(ctx context.Context) Result[AuthenticateData]

	// GetSubscriptionByID returns the contract event with the given id.
	GetSubscriptionByID(ctx context.Context, id string) Result[SubscriptionByIDData]

	// GetSubscriptions lists all contract event subscriptions.
	GetSubscriptions(ctx context.Context) Result[AllSubscriptionsData]

	// AddNewSubscription creates a single subscription.
	AddNewSubscription(ctx context.Context, req SubscriptionRequest) Result[json.RawMessage]

	// AddNewTokenSubscription subscribes to transfers to and from pubKey and to mints of contractID.
	AddNewTokenSubscription(ctx context.Context, contractID, pubKey string) Result[bool]

	// AddNewAccountSubscription subscribes to every change of the given account.
	AddNewAccountSubscription(ctx context.Context, pubKey string) Result[AccountSubscriptionData]

	// GetAccountHistory returns account creations and payments involving pubKey.
	GetAccountHistory(ctx context.Context, pubKey string) Result[AccountHistoryData]
}

// WriteAttempt describes one write-channel call made by the client.
type WriteAttempt struct {
	// Operation is the client operation that issued the call.
	Operation string
	// Label names the call within a composite operation, e.g. "transfer-to".
	Label    string
	Request  SubscriptionRequest
	Response json.RawMessage
	// Accepted is true when the call succeeded and returned a truthy payload.
	Accepted bool
	Err      error
}

// AttemptRecorder persists write-channel attempts.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, attempt WriteAttempt) error
}
