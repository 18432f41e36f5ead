package mercury

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
)

const opPostSubscription = "newsubscription"

// Compile-time check to ensure SubscriptionChannel implements pkgmercury.WriteChannel interface.
var _ pkgmercury.WriteChannel = (*SubscriptionChannel)(nil)

// SubscriptionChannel posts new subscriptions to the indexing service write endpoint.
type SubscriptionChannel struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      *logger.Logger
}

// NewSubscriptionChannel creates a channel that posts to endpoint.
// A zero timeout leaves the deadline to the caller's context.
func NewSubscriptionChannel(endpoint string, httpClient *http.Client, timeout time.Duration,
	log *logger.Logger) *SubscriptionChannel {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SubscriptionChannel{
		endpoint: endpoint,
		http:     httpClient,
		timeout:  timeout,
		log:      log,
	}
}

// PostSubscription implements pkgmercury.WriteChannel.
// A 2xx response with a non JSON body is returned as a JSON string.
func (s *SubscriptionChannel) PostSubscription(ctx context.Context, token string,
	body any) (json.RawMessage, error) {
	BackendRequestInc(ChannelWrite, opPostSubscription)
	start := time.Now()
	defer func() {
		BackendRequestDuration(ChannelWrite, opPostSubscription, time.Since(start))
	}()

	payload, err := s.post(ctx, token, body)
	if err != nil {
		var me *pkgmercury.Error
		if errors.As(err, &me) {
			BackendRequestError(ChannelWrite, opPostSubscription, me.Kind)
		}
		s.log.Debugf("subscription post failed: %v", err)
		return nil, err
	}

	s.log.Debugf("subscription post completed in %s, response size: %d", time.Since(start), len(payload))

	return payload, nil
}

func (s *SubscriptionChannel) post(ctx context.Context, token string, body any) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, pkgmercury.NewError(pkgmercury.KindInvalid, opPostSubscription,
			fmt.Errorf("failed to encode subscription: %w", err))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, pkgmercury.NewError(pkgmercury.KindConfig, opPostSubscription, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set(headerAuthorization, "Bearer "+token)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, pkgmercury.NewError(pkgmercury.KindTransport, opPostSubscription, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, pkgmercury.NewError(pkgmercury.KindTransport, opPostSubscription, &pkgmercury.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(respBody)),
		})
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, pkgmercury.NewError(pkgmercury.KindTransport, opPostSubscription,
			fmt.Errorf("failed to read response: %w", err))
	}

	respBody = bytes.TrimSpace(respBody)
	if len(respBody) == 0 {
		return nil, nil
	}

	if json.Valid(respBody) {
		return json.RawMessage(respBody), nil
	}

	quoted, err := json.Marshal(string(respBody))
	if err != nil {
		return nil, pkgmercury.NewError(pkgmercury.KindProtocol, opPostSubscription, err)
	}

	return quoted, nil
}

// Truthy reports whether a write-channel payload counts as a success:
// it must be non empty and not null, false, 0 or "".
func Truthy(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return false
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return false
	}

	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}
