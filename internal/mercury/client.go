package mercury

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	pkgconfig "github.com/goran-ethernal/MercuryBridge/pkg/config"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"golang.org/x/sync/errgroup"
)

// Operation names used in errors, logs and the ledger.
const (
	OpRenewToken                = "RenewToken"
	OpGetSubscriptionByID       = "GetSubscriptionByID"
	OpGetSubscriptions          = "GetSubscriptions"
	OpAddNewSubscription        = "AddNewSubscription"
	OpAddNewTokenSubscription   = "AddNewTokenSubscription"
	OpAddNewAccountSubscription = "AddNewAccountSubscription"
	OpGetAccountHistory         = "GetAccountHistory"
)

// Labels of the calls issued by AddNewTokenSubscription.
const (
	LabelTransferTo   = "transfer-to"
	LabelTransferFrom = "transfer-from"
	LabelMint         = "mint"
)

// Compile-time check to ensure Client implements pkgmercury.Client interface.
var _ pkgmercury.Client = (*Client)(nil)

// Client is the subscription orchestration client.
// It is safe for concurrent use.
type Client struct {
	query    pkgmercury.QueryChannel
	write    pkgmercury.WriteChannel
	session  *Session
	recorder pkgmercury.AttemptRecorder

	maxSingleSize int

	log *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRecorder records every write-channel attempt with r.
func WithRecorder(r pkgmercury.AttemptRecorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithMaxSingleSize sets the max_single_size of token event subscriptions.
func WithMaxSingleSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxSingleSize = size
		}
	}
}

// NewClient creates a client over the given channels and session.
func NewClient(query pkgmercury.QueryChannel, write pkgmercury.WriteChannel, session *Session,
	log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	c := &Client{
		query:         query,
		write:         write,
		session:       session,
		maxSingleSize: pkgmercury.DefaultMaxSingleSize,
		log:           log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig builds the HTTP channels and the session from cfg.
// cfg is expected to have defaults applied and to be valid.
func NewClientFromConfig(cfg pkgconfig.MercuryConfig, httpClient *http.Client, logCfg logger.LoggingConfig,
	opts ...Option) *Client {
	timeout := cfg.RequestTimeout.Duration

	query := NewGraphQLChannel(cfg.GraphQLURL, httpClient, timeout,
		logger.NewComponentLoggerFromConfig(common.ComponentGraphQL, logCfg))
	write := NewSubscriptionChannel(cfg.SubscriptionURL, httpClient, timeout,
		logger.NewComponentLoggerFromConfig(common.ComponentWriteChannel, logCfg))
	session := NewSession(cfg.AccessKey, cfg.Email, cfg.Password)

	opts = append([]Option{WithMaxSingleSize(cfg.MaxSingleSize)}, opts...)

	return NewClient(query, write, session,
		logger.NewComponentLoggerFromConfig(common.ComponentClient, logCfg), opts...)
}

// Session returns the client's session.
func (c *Client) Session() *Session {
	return c.session
}

// RenewToken authenticates with the session credentials and stores the returned token
// in the session. No call is made when credentials are not configured.
func (c *Client) RenewToken(ctx context.Context) pkgmercury.Result[pkgmercury.AuthenticateData] {
	email, password, ok := c.session.Credentials()
	if !ok {
		return fail[pkgmercury.AuthenticateData](c, pkgmercury.Errorf(pkgmercury.KindInvalid, OpRenewToken,
			"token renewal requires %s and %s", pkgconfig.EnvMercuryEmail, pkgconfig.EnvMercuryPassword))
	}

	var data pkgmercury.AuthenticateData
	err := c.query.Execute(ctx, pkgmercury.Request{
		Query:     Authenticate,
		Variables: map[string]any{"email": email, "password": password},
	}, &data)
	if err != nil {
		TokenRenewalInc("error")
		return fail[pkgmercury.AuthenticateData](c, pkgmercury.AsError(pkgmercury.KindTransport, OpRenewToken, err))
	}

	if data.Authenticate.JwtToken == "" {
		TokenRenewalInc("error")
		return fail[pkgmercury.AuthenticateData](c, pkgmercury.Errorf(pkgmercury.KindProtocol, OpRenewToken,
			"authenticate returned no token"))
	}

	c.session.SetToken(data.Authenticate.JwtToken)
	TokenRenewalInc("success")
	c.log.Info("mercury token renewed")

	return pkgmercury.OK(data)
}

// GetSubscriptionByID returns the contract event with the given id.
func (c *Client) GetSubscriptionByID(ctx context.Context,
	id string) pkgmercury.Result[pkgmercury.SubscriptionByIDData] {
	if id == "" {
		return fail[pkgmercury.SubscriptionByIDData](c,
			pkgmercury.Errorf(pkgmercury.KindInvalid, OpGetSubscriptionByID, "id is required"))
	}

	return runQuery[pkgmercury.SubscriptionByIDData](ctx, c, OpGetSubscriptionByID, SubscriptionByID,
		map[string]any{"id": id})
}

// GetSubscriptions lists all contract event subscriptions.
func (c *Client) GetSubscriptions(ctx context.Context) pkgmercury.Result[pkgmercury.AllSubscriptionsData] {
	return runQuery[pkgmercury.AllSubscriptionsData](ctx, c, OpGetSubscriptions, AllSubscriptions,
		map[string]any{})
}

// AddNewSubscription posts req to the write channel with the current token.
func (c *Client) AddNewSubscription(ctx context.Context,
	req pkgmercury.SubscriptionRequest) pkgmercury.Result[json.RawMessage] {
	if err := req.Validate(); err != nil {
		return fail[json.RawMessage](c, pkgmercury.NewError(pkgmercury.KindInvalid, OpAddNewSubscription, err))
	}

	payload, err := c.write.PostSubscription(ctx, c.session.Token(), req)
	c.record(ctx, OpAddNewSubscription, "", req, payload, err)
	if err != nil {
		return fail[json.RawMessage](c, pkgmercury.AsError(pkgmercury.KindTransport, OpAddNewSubscription, err))
	}

	if len(payload) == 0 {
		return fail[json.RawMessage](c, pkgmercury.Errorf(pkgmercury.KindProtocol, OpAddNewSubscription,
			"indexing service returned an empty response"))
	}

	return pkgmercury.OK(payload)
}

type tokenSubscription struct {
	label string
	req   pkgmercury.SubscriptionRequest
}

// tokenSubscriptions builds the three subscriptions that cover a token account.
// Token transfer topics are 1: transfer, 2: from, 3: to, 4: asset name.
func tokenSubscriptions(contractID, pubKey string, maxSingleSize int) []tokenSubscription {
	transfer := EncodeTopic(TopicTransfer)
	account := EncodeTopic(pubKey)

	return []tokenSubscription{
		{
			label: LabelTransferTo,
			req: pkgmercury.SubscriptionRequest{
				ContractID:    contractID,
				MaxSingleSize: maxSingleSize,
				Topic1:        transfer,
				Topic2:        account,
			},
		},
		{
			label: LabelTransferFrom,
			req: pkgmercury.SubscriptionRequest{
				ContractID:    contractID,
				MaxSingleSize: maxSingleSize,
				Topic1:        transfer,
				Topic3:        account,
			},
		},
		{
			label: LabelMint,
			req: pkgmercury.SubscriptionRequest{
				ContractID:    contractID,
				MaxSingleSize: maxSingleSize,
				Topic1:        EncodeTopic(TopicMint),
			},
		},
	}
}

// AddNewTokenSubscription issues the transfer-to, transfer-from and mint subscriptions
// concurrently and waits for all of them. It succeeds only if every call returns a
// truthy payload. Subscriptions that were created are kept when another one fails.
func (c *Client) AddNewTokenSubscription(ctx context.Context, contractID, pubKey string) pkgmercury.Result[bool] {
	if contractID == "" || pubKey == "" {
		return fail[bool](c, pkgmercury.Errorf(pkgmercury.KindInvalid, OpAddNewTokenSubscription,
			"contract_id and pub_key are required"))
	}

	subs := tokenSubscriptions(contractID, pubKey, c.maxSingleSize)
	token := c.session.Token()
	outcomes := make([]error, len(subs))

	// sub-calls never return an error to the group so that no sibling is cancelled
	var g errgroup.Group
	for i, sub := range subs {
		g.Go(func() error {
			payload, err := c.write.PostSubscription(ctx, token, sub.req)
			c.record(ctx, OpAddNewTokenSubscription, sub.label, sub.req, payload, err)

			switch {
			case err != nil:
				outcomes[i] = fmt.Errorf("%s: %w", sub.label, err)
			case !Truthy(payload):
				outcomes[i] = fmt.Errorf("%s: indexing service returned %q", sub.label, string(payload))
			}

			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(outcomes...); err != nil {
		return fail[bool](c, &pkgmercury.Error{
			Kind:    pkgmercury.KindAggregate,
			Op:      OpAddNewTokenSubscription,
			Message: pkgmercury.TokenEventsFailedMessage,
			Err:     err,
		})
	}

	c.log.Infof("subscribed to token events: contract=%s account=%s", contractID, pubKey)

	return pkgmercury.OK(true)
}

// AddNewAccountSubscription subscribes to every change of the given account.
func (c *Client) AddNewAccountSubscription(ctx context.Context,
	pubKey string) pkgmercury.Result[pkgmercury.AccountSubscriptionData] {
	if pubKey == "" {
		return fail[pkgmercury.AccountSubscriptionData](c,
			pkgmercury.Errorf(pkgmercury.KindInvalid, OpAddNewAccountSubscription, "pub_key is required"))
	}

	return runQuery[pkgmercury.AccountSubscriptionData](ctx, c, OpAddNewAccountSubscription,
		NewAccountSubscription, map[string]any{"pubKey": pubKey})
}

// GetAccountHistory returns created accounts, merged accounts and payments in
// both directions for pubKey.
func (c *Client) GetAccountHistory(ctx context.Context,
	pubKey string) pkgmercury.Result[pkgmercury.AccountHistoryData] {
	if pubKey == "" {
		return fail[pkgmercury.AccountHistoryData](c,
			pkgmercury.Errorf(pkgmercury.KindInvalid, OpGetAccountHistory, "pub_key is required"))
	}

	return runQuery[pkgmercury.AccountHistoryData](ctx, c, OpGetAccountHistory, GetAccountHistory,
		map[string]any{"publicKeyText": pubKey})
}

// runQuery executes q with the session token and decodes the response into T.
func runQuery[T any](ctx context.Context, c *Client, op string, q pkgmercury.Query,
	vars map[string]any) pkgmercury.Result[T] {
	var data T
	err := c.query.Execute(ctx, pkgmercury.Request{
		Query:     q,
		Variables: vars,
		Token:     c.session.Token(),
	}, &data)
	if err != nil {
		return fail[T](c, pkgmercury.AsError(pkgmercury.KindTransport, op, err))
	}

	return pkgmercury.OK(data)
}

func fail[T any](c *Client, err *pkgmercury.Error) pkgmercury.Result[T] {
	c.log.Errorf("%s failed (%s): %v", err.Op, err.Kind, err)
	return pkgmercury.Fail[T](err)
}

// record stores a write-channel attempt. Recording never changes the operation outcome.
func (c *Client) record(ctx context.Context, op, label string, req pkgmercury.SubscriptionRequest,
	payload json.RawMessage, err error) {
	if c.recorder == nil {
		return
	}

	attempt := pkgmercury.WriteAttempt{
		Operation: op,
		Label:     label,
		Request:   req,
		Response:  payload,
		Accepted:  err == nil && Truthy(payload),
		Err:       err,
	}

	if recErr := c.recorder.RecordAttempt(context.WithoutCancel(ctx), attempt); recErr != nil {
		c.log.Warnf("failed to record %s attempt: %v", op, recErr)
	}
}
