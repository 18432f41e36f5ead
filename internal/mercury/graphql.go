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
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	maxResponseBytes    = 10 << 20
	maxErrorBodyBytes   = 2048
	contentTypeJSON     = "application/json"
	headerAuthorization = "Authorization"
)

// Compile-time check to ensure GraphQLChannel implements pkgmercury.QueryChannel interface.
var _ pkgmercury.QueryChannel = (*GraphQLChannel)(nil)

// GraphQLChannel sends queries and mutations to the indexing service GraphQL endpoint.
type GraphQLChannel struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      *logger.Logger
}

// NewGraphQLChannel creates a channel that posts to endpoint.
// A zero timeout leaves the deadline to the caller's context.
func NewGraphQLChannel(endpoint string, httpClient *http.Client, timeout time.Duration,
	log *logger.Logger) *GraphQLChannel {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &GraphQLChannel{
		endpoint: endpoint,
		http:     httpClient,
		timeout:  timeout,
		log:      log,
	}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// Execute implements pkgmercury.QueryChannel.
func (g *GraphQLChannel) Execute(ctx context.Context, req pkgmercury.Request, out any) error {
	op := req.Query.Key

	BackendRequestInc(ChannelGraphQL, op)
	start := time.Now()
	defer func() {
		BackendRequestDuration(ChannelGraphQL, op, time.Since(start))
	}()

	err := g.execute(ctx, req, out)
	if err != nil {
		var me *pkgmercury.Error
		if errors.As(err, &me) {
			BackendRequestError(ChannelGraphQL, op, me.Kind)
		}
		g.log.Debugf("graphql %s failed: %v", op, err)
		return err
	}

	g.log.Debugf("graphql %s completed in %s", op, time.Since(start))

	return nil
}

func (g *GraphQLChannel) execute(ctx context.Context, req pkgmercury.Request, out any) error {
	op := req.Query.Key

	operationName, err := checkDocument(req.Query, req.Variables)
	if err != nil {
		return pkgmercury.NewError(pkgmercury.KindInvalid, op, err)
	}

	payload, err := json.Marshal(graphQLRequest{
		Query:         req.Query.Document,
		Variables:     req.Variables,
		OperationName: operationName,
	})
	if err != nil {
		return pkgmercury.NewError(pkgmercury.KindInvalid, op, fmt.Errorf("failed to encode request: %w", err))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgmercury.NewError(pkgmercury.KindConfig, op, err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.Token != "" {
		httpReq.Header.Set(headerAuthorization, "Bearer "+req.Token)
	}

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return pkgmercury.NewError(pkgmercury.KindTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return pkgmercury.NewError(pkgmercury.KindTransport, op, &pkgmercury.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(body)),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pkgmercury.NewError(pkgmercury.KindTransport, op, fmt.Errorf("failed to read response: %w", err))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return pkgmercury.NewError(pkgmercury.KindProtocol, op, fmt.Errorf("invalid graphql response: %w", err))
	}

	if len(gqlResp.Errors) > 0 {
		return pkgmercury.NewError(pkgmercury.KindProtocol, op, gqlResp.Errors)
	}

	if len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return pkgmercury.Errorf(pkgmercury.KindProtocol, op, "graphql response for %s has no data", op)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return pkgmercury.NewError(pkgmercury.KindProtocol, op, fmt.Errorf("failed to decode %s data: %w", op, err))
	}

	return nil
}

// checkDocument parses the query document and returns the name of its single operation.
// Every required variable without a default must be present in vars.
func checkDocument(q pkgmercury.Query, vars map[string]any) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: q.Key, Input: q.Document})
	if err != nil {
		return "", fmt.Errorf("malformed query %s: %w", q.Key, err)
	}

	if len(doc.Operations) != 1 {
		return "", fmt.Errorf("query %s must define exactly one operation, found %d", q.Key, len(doc.Operations))
	}

	operation := doc.Operations[0]
	for _, v := range operation.VariableDefinitions {
		if !v.Type.NonNull || v.DefaultValue != nil {
			continue
		}
		if val, ok := vars[v.Variable]; !ok || val == nil {
			return "", fmt.Errorf("query %s: missing required variable $%s", q.Key, v.Variable)
		}
	}

	return operation.Name, nil
}
