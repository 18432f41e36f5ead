package mercury

import (
	"encoding/json"
	"fmt"
	"maps"
)

// DefaultMaxSingleSize is the max_single_size used by composite subscriptions.
const DefaultMaxSingleSize = 200

// Query is a named GraphQL document from the query catalog.
type Query struct {
	Key      string
	Document string
}

// Request is a single structured-channel call.
type Request struct {
	Query     Query
	Variables map[string]any
	// Token is sent as a bearer token when not empty.
	Token string
}

// SubscriptionRequest is the body of a write-channel subscription call.
// Extra holds any additional named fields; they are serialized next to the
// known fields, which win on a name clash.
type SubscriptionRequest struct {
	ContractID    string `json:"contract_id,omitempty"`
	MaxSingleSize int    `json:"max_single_size"`
	Topic1        string `json:"topic1,omitempty"`
	Topic2        string `json:"topic2,omitempty"`
	Topic3        string `json:"topic3,omitempty"`
	Topic4        string `json:"topic4,omitempty"`

	Extra map[string]any `json:"-"`
}

var knownSubscriptionFields = map[string]struct{}{
	"contract_id":     {},
	"max_single_size": {},
	"topic1":          {},
	"topic2":          {},
	"topic3":          {},
	"topic4":          {},
}

// Validate checks the fields the write channel requires.
func (s SubscriptionRequest) Validate() error {
	if s.MaxSingleSize <= 0 {
		return fmt.Errorf("max_single_size must be a positive number")
	}
	return nil
}

// Topics returns the four positional topic filters.
func (s SubscriptionRequest) Topics() [4]string {
	return [4]string{s.Topic1, s.Topic2, s.Topic3, s.Topic4}
}

// MarshalJSON flattens Extra into the top level object.
func (s SubscriptionRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+len(knownSubscriptionFields))
	maps.Copy(out, s.Extra)

	for k := range knownSubscriptionFields {
		delete(out, k)
	}

	if s.ContractID != "" {
		out["contract_id"] = s.ContractID
	}
	out["max_single_size"] = s.MaxSingleSize
	for i, topic := range s.Topics() {
		if topic != "" {
			out[fmt.Sprintf("topic%d", i+1)] = topic
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads the known fields and keeps every other field in Extra.
// max_single_size may be given as a number or as a numeric string.
func (s *SubscriptionRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var req SubscriptionRequest

	strField := func(name string, dst *string) error {
		v, ok := raw[name]
		if !ok || string(v) == "null" {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	for name, dst := range map[string]*string{
		"contract_id": &req.ContractID,
		"topic1":      &req.Topic1,
		"topic2":      &req.Topic2,
		"topic3":      &req.Topic3,
		"topic4":      &req.Topic4,
	} {
		if err := strField(name, dst); err != nil {
			return err
		}
	}

	if v, ok := raw["max_single_size"]; ok && string(v) != "null" {
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return fmt.Errorf("max_single_size: %w", err)
		}
		size, err := n.Int64()
		if err != nil {
			return fmt.Errorf("max_single_size: %w", err)
		}
		req.MaxSingleSize = int(size)
	}

	for k, v := range raw {
		if _, known := knownSubscriptionFields[k]; known {
			continue
		}
		if req.Extra == nil {
			req.Extra = make(map[string]any)
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		req.Extra[k] = val
	}

	*s = req
	return nil
}

// Edge is a single node of a GraphQL connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is a relay style GraphQL list.
type Connection[T any] struct {
	Edges []Edge[T] `json:"edges"`
}

// Nodes returns the nodes of every edge in order.
func (c Connection[T]) Nodes() []T {
	nodes := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes
}

// AuthenticateData is the response of the authenticate mutation.
type AuthenticateData struct {
	Authenticate struct {
		JwtToken string `json:"jwtToken"`
	} `json:"authenticate"`
}

// ContractEvent is a stored contract event.
type ContractEvent struct {
	ID              json.Number `json:"id"`
	Data            string      `json:"data"`
	ContractID      string      `json:"contractId"`
	LedgerTimestamp json.Number `json:"ledgerTimestamp"`
	NodeID          string      `json:"nodeId"`
	Topic1          string      `json:"topic1"`
	Topic2          string      `json:"topic2"`
	Topic3          string      `json:"topic3"`
	Topic4          string      `json:"topic4"`
}

// SubscriptionByIDData is the response of the subscriptionById query.
type SubscriptionByIDData struct {
	ContractEventByID *ContractEvent `json:"contractEventById"`
}

// ContractSubscription is a registered contract event subscription.
type ContractSubscription struct {
	ContractID string `json:"contractId"`
}

// AllSubscriptionsData is the response of the allSubscriptions query.
type AllSubscriptionsData struct {
	AllContractEventSubscriptions Connection[ContractSubscription] `json:"allContractEventSubscriptions"`
}

// AccountSubscriptionData is the response of the newAccountSubscription mutation.
type AccountSubscriptionData struct {
	CreateFullAccountSubscription struct {
		ClientMutationID *string `json:"clientMutationId"`
	} `json:"createFullAccountSubscription"`
}

// AccountRef identifies an account by public key.
type AccountRef struct {
	PublicKey string `json:"publickey"`
}

// Payment is a payment operation between two accounts.
type Payment struct {
	Amount               json.Number `json:"amount"`
	AssetNative          bool        `json:"assetNative"`
	AccountBySource      AccountRef  `json:"accountBySource"`
	AccountByDestination AccountRef  `json:"accountByDestination"`
}

// AccountEvent is an account creation or merge entry.
type AccountEvent struct {
	NodeID string `json:"nodeId"`
}

// AccountHistoryData is the response of the getAccountHistory query.
type AccountHistoryData struct {
	CreateAccountByPublicKey Connection[AccountEvent] `json:"createAccountByPublicKey"`
	CreateAccountToPublicKey Connection[AccountEvent] `json:"createAccountToPublicKey"`
	PaymentsByPublicKey      Connection[Payment]      `json:"paymentsByPublicKey"`
	PaymentsToPublicKey      Connection[Payment]      `json:"paymentsToPublicKey"`
}
