package mercury

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

type recordedGraphQL struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`

	method        string
	contentType   string
	authorization string
}

type graphQLRecorder struct {
	mu    sync.Mutex
	calls []recordedGraphQL
}

func (r *graphQLRecorder) add(rec recordedGraphQL) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, rec)
}

func (r *graphQLRecorder) Calls() []recordedGraphQL {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedGraphQL(nil), r.calls...)
}

// newGraphQLServer starts a server that records each request and answers with status and body.
func newGraphQLServer(t *testing.T, status int, body string) (*httptest.Server, *graphQLRecorder) {
	t.Helper()

	calls := &graphQLRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rec recordedGraphQL
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec.method = r.Method
		rec.contentType = r.Header.Get("Content-Type")
		rec.authorization = r.Header.Get("Authorization")
		calls.add(rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, calls
}

func TestGraphQLChannel_Execute_Success(t *testing.T) {
	t.Parallel()

	srv, calls := newGraphQLServer(t, http.StatusOK,
		`{"data":{"contractEventById":{"id":7,"contractId":"CABC","topic1":"t1"}}}`)

	ch := NewGraphQLChannel(srv.URL, srv.Client(), time.Second, logger.NewNopLogger())

	var out pkgmercury.SubscriptionByIDData
	err := ch.Execute(context.Background(), pkgmercury.Request{
		Query:     SubscriptionByID,
		Variables: map[string]any{"id": "7"},
		Token:     "jwt",
	}, &out)
	require.NoError(t, err)

	require.NotNil(t, out.ContractEventByID)
	require.Equal(t, "CABC", out.ContractEventByID.ContractID)
	require.Equal(t, json.Number("7"), out.ContractEventByID.ID)

	require.Len(t, calls.Calls(), 1)
	call := calls.Calls()[0]
	require.Equal(t, http.MethodPost, call.method)
	require.Equal(t, "application/json", call.contentType)
	require.Equal(t, SubscriptionByID.Document, call.Query)
	require.Equal(t, map[string]any{"id": "7"}, call.Variables)
	require.Equal(t, "GetSubById", call.OperationName)
	require.Equal(t, "Bearer jwt", call.authorization)
}

func TestGraphQLChannel_Execute_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	srv, calls := newGraphQLServer(t, http.StatusOK, `{"data":{"authenticate":{"jwtToken":"abc"}}}`)
	ch := NewGraphQLChannel(srv.URL, srv.Client(), 0, nil)

	var out pkgmercury.AuthenticateData
	err := ch.Execute(context.Background(), pkgmercury.Request{
		Query:     Authenticate,
		Variables: map[string]any{"email": "a@b.c", "password": "p"},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, "abc", out.Authenticate.JwtToken)

	require.Len(t, calls.Calls(), 1)
	require.Empty(t, calls.Calls()[0].authorization)
	require.Equal(t, "Authenticate", calls.Calls()[0].OperationName)
}

func TestGraphQLChannel_Execute_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind pkgmercury.ErrorKind
		check    func(t *testing.T, err error)
	}{
		{
			name:     "graphql errors",
			status:   http.StatusOK,
			body:     `{"data":null,"errors":[{"message":"permission denied","path":["contractEventById"]}]}`,
			wantKind: pkgmercury.KindProtocol,
			check: func(t *testing.T, err error) {
				t.Helper()
				var list gqlerror.List
				require.ErrorAs(t, err, &list)
				require.Len(t, list, 1)
				require.Equal(t, "permission denied", list[0].Message)
			},
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"jwt expired"}`,
			wantKind: pkgmercury.KindTransport,
			check: func(t *testing.T, err error) {
				t.Helper()
				var statusErr *pkgmercury.HTTPStatusError
				require.ErrorAs(t, err, &statusErr)
				require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
				require.Contains(t, statusErr.Body, "jwt expired")
				require.True(t, pkgmercury.IsUnauthorized(err))
			},
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: pkgmercury.KindTransport,
		},
		{
			name:     "null data",
			status:   http.StatusOK,
			body:     `{"data":null}`,
			wantKind: pkgmercury.KindProtocol,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>gateway</html>`,
			wantKind: pkgmercury.KindProtocol,
		},
		{
			name:     "data shape mismatch",
			status:   http.StatusOK,
			body:     `{"data":{"contractEventById":"not an object"}}`,
			wantKind: pkgmercury.KindProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, calls := newGraphQLServer(t, tt.status, tt.body)
			ch := NewGraphQLChannel(srv.URL, srv.Client(), time.Second, logger.NewNopLogger())

			var out pkgmercury.SubscriptionByIDData
			err := ch.Execute(context.Background(), pkgmercury.Request{
				Query:     SubscriptionByID,
				Variables: map[string]any{"id": "1"},
			}, &out)
			require.Error(t, err)
			require.Equal(t, tt.wantKind, pkgmercury.KindOf(err))
			require.Len(t, calls.Calls(), 1)

			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestGraphQLChannel_Execute_InvalidDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query pkgmercury.Query
		vars  map[string]any
	}{
		{
			name:  "syntax error",
			query: pkgmercury.Query{Key: "broken", Document: `query { field(`},
		},
		{
			name:  "two operations",
			query: pkgmercury.Query{Key: "double", Document: `query A { a } query B { b }`},
		},
		{
			name:  "missing required variable",
			query: SubscriptionByID,
			vars:  map[string]any{},
		},
		{
			name:  "nil required variable",
			query: GetAccountHistory,
			vars:  map[string]any{"publicKeyText": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
			}))
			t.Cleanup(srv.Close)

			ch := NewGraphQLChannel(srv.URL, srv.Client(), time.Second, logger.NewNopLogger())
			err := ch.Execute(context.Background(), pkgmercury.Request{Query: tt.query, Variables: tt.vars}, nil)

			require.Error(t, err)
			require.Equal(t, pkgmercury.KindInvalid, pkgmercury.KindOf(err))
			require.Zero(t, hits.Load(), "invalid documents must not reach the backend")
		})
	}
}

func TestGraphQLChannel_Execute_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	ch := NewGraphQLChannel(srv.URL, srv.Client(), 50*time.Millisecond, logger.NewNopLogger())

	err := ch.Execute(context.Background(), pkgmercury.Request{Query: AllSubscriptions}, nil)
	require.Error(t, err)
	require.Equal(t, pkgmercury.KindTransport, pkgmercury.KindOf(err))
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGraphQLChannel_Execute_CallerCancel(t *testing.T) {
	t.Parallel()

	srv, calls := newGraphQLServer(t, http.StatusOK, `{"data":{}}`)
	ch := NewGraphQLChannel(srv.URL, srv.Client(), time.Second, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ch.Execute(ctx, pkgmercury.Request{Query: AllSubscriptions}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, pkgmercury.KindTransport, pkgmercury.KindOf(err))
	require.Empty(t, calls.Calls())
}

func TestCatalog_DocumentsParse(t *testing.T) {
	t.Parallel()

	wantOps := map[string]string{
		"authenticate":           "Authenticate",
		"subscriptionById":       "GetSubById",
		"allSubscriptions":       "AllSubscriptions",
		"newAccountSubscription": "NewAccountSubscription",
		"getAccountHistory":      "GetAccountHistory",
	}

	require.Len(t, Catalog, len(wantOps))

	vars := map[string]any{
		"email": "e", "password": "p", "id": "1", "pubKey": "G", "publicKeyText": "G",
	}

	for key, q := range Catalog {
		require.Equal(t, key, q.Key)

		name, err := checkDocument(q, vars)
		require.NoError(t, err, key)
		require.Equal(t, wantOps[key], name)
	}
}
