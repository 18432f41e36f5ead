package mercury

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	pkgconfig "github.com/goran-ethernal/MercuryBridge/pkg/config"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"github.com/goran-ethernal/MercuryBridge/pkg/mercury/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "access-key"
	testContract = "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"
	testPubKey   = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"
)

func setupTestClient(t *testing.T, email, password string,
	opts ...Option) (*Client, *mocks.QueryChannel, *mocks.WriteChannel) {
	t.Helper()

	query := mocks.NewQueryChannel(t)
	write := mocks.NewWriteChannel(t)
	client := NewClient(query, write, NewSession(testToken, email, password), logger.NewNopLogger(), opts...)

	return client, query, write
}

// fillOut decodes data into the out argument of a mocked Execute call.
func fillOut(data string) func(ctx context.Context, req pkgmercury.Request, out interface{}) {
	return func(_ context.Context, _ pkgmercury.Request, out interface{}) {
		if err := json.Unmarshal([]byte(data), out); err != nil {
			panic(err)
		}
	}
}

func TestClient_GetSubscriptionByID(t *testing.T) {
	t.Parallel()

	client, query, _ := setupTestClient(t, "", "")

	query.EXPECT().Execute(mock.Anything, pkgmercury.Request{
		Query:     SubscriptionByID,
		Variables: map[string]any{"id": "X"},
		Token:     testToken,
	}, mock.Anything).
		Run(fillOut(`{"contractEventById":{"id":"1","contractId":"CABC"}}`)).
		Return(nil).Once()

	res := client.GetSubscriptionByID(context.Background(), "X")

	require.Nil(t, res.Error)
	require.NotNil(t, res.Data.ContractEventByID)
	require.Equal(t, "CABC", res.Data.ContractEventByID.ContractID)
}

func TestClient_GetSubscriptions(t *testing.T) {
	t.Parallel()

	client, query, _ := setupTestClient(t, "", "")

	query.EXPECT().Execute(mock.Anything, pkgmercury.Request{
		Query:     AllSubscriptions,
		Variables: map[string]any{},
		Token:     testToken,
	}, mock.Anything).
		Run(fillOut(`{"allContractEventSubscriptions":{"edges":[{"node":{"contractId":"C1"}}]}}`)).
		Return(nil).Once()

	res := client.GetSubscriptions(context.Background())

	require.Nil(t, res.Error)
	require.Equal(t, []pkgmercury.ContractSubscription{{ContractID: "C1"}},
		res.Data.AllContractEventSubscriptions.Nodes())
}

func TestClient_StructuredFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind pkgmercury.ErrorKind
	}{
		{
			name:     "untagged transport error",
			err:      errors.New("connection reset"),
			wantKind: pkgmercury.KindTransport,
		},
		{
			name:     "protocol error",
			err:      pkgmercury.Errorf(pkgmercury.KindProtocol, SubscriptionByID.Key, "permission denied"),
			wantKind: pkgmercury.KindProtocol,
		},
		{
			name:     "status error",
			err:      pkgmercury.NewError(pkgmercury.KindTransport, SubscriptionByID.Key, &pkgmercury.HTTPStatusError{StatusCode: 502}),
			wantKind: pkgmercury.KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, query, _ := setupTestClient(t, "", "")
			query.EXPECT().Execute(mock.Anything, mock.Anything, mock.Anything).Return(tt.err).Once()

			res := client.GetSubscriptionByID(context.Background(), "X")

			require.NotNil(t, res.Error)
			require.Nil(t, res.Data.ContractEventByID)
			require.Equal(t, tt.wantKind, res.Error.Kind)
			require.Equal(t, OpGetSubscriptionByID, res.Error.Op)
			require.Equal(t, tt.err.Error(), res.Error.Error())
		})
	}
}

func TestClient_AddNewAccountSubscription(t *testing.T) {
	t.Parallel()

	client, query, _ := setupTestClient(t, "", "")

	query.EXPECT().Execute(mock.Anything, pkgmercury.Request{
		Query:     NewAccountSubscription,
		Variables: map[string]any{"pubKey": testPubKey},
		Token:     testToken,
	}, mock.Anything).
		Run(fillOut(`{"createFullAccountSubscription":{"clientMutationId":"m1"}}`)).
		Return(nil).Once()

	res := client.AddNewAccountSubscription(context.Background(), testPubKey)

	require.Nil(t, res.Error)
	require.NotNil(t, res.Data.CreateFullAccountSubscription.ClientMutationID)
	require.Equal(t, "m1", *res.Data.CreateFullAccountSubscription.ClientMutationID)
}

func TestClient_GetAccountHistory(t *testing.T) {
	t.Parallel()

	client, query, _ := setupTestClient(t, "", "")

	query.EXPECT().Execute(mock.Anything, pkgmercury.Request{
		Query:     GetAccountHistory,
		Variables: map[string]any{"publicKeyText": testPubKey},
		Token:     testToken,
	}, mock.Anything).
		Run(fillOut(`{
			"createAccountByPublicKey": {"edges": [{"node": {"nodeId": "n1"}}]},
			"createAccountToPublicKey": {"edges": []},
			"paymentsByPublicKey": {"edges": [{"node": {
				"amount": "100",
				"assetNative": true,
				"accountBySource": {"publickey": "GSRC"},
				"accountByDestination": {"publickey": "GDST"}
			}}]},
			"paymentsToPublicKey": {"edges": []}
		}`)).
		Return(nil).Once()

	res := client.GetAccountHistory(context.Background(), testPubKey)

	require.Nil(t, res.Error)
	require.Len(t, res.Data.CreateAccountByPublicKey.Edges, 1)
	payments := res.Data.PaymentsByPublicKey.Nodes()
	require.Len(t, payments, 1)
	require.Equal(t, json.Number("100"), payments[0].Amount)
	require.Equal(t, "GDST", payments[0].AccountByDestination.PublicKey)
}

func TestClient_InvalidArguments(t *testing.T) {
	t.Parallel()

	// mocks without expectations fail the test if any backend call is made
	client, _, _ := setupTestClient(t, "", "")
	ctx := context.Background()

	require.Equal(t, pkgmercury.KindInvalid, client.GetSubscriptionByID(ctx, "").Error.Kind)
	require.Equal(t, pkgmercury.KindInvalid, client.AddNewAccountSubscription(ctx, "").Error.Kind)
	require.Equal(t, pkgmercury.KindInvalid, client.GetAccountHistory(ctx, "").Error.Kind)
	require.Equal(t, pkgmercury.KindInvalid, client.AddNewTokenSubscription(ctx, "", testPubKey).Error.Kind)
	require.Equal(t, pkgmercury.KindInvalid, client.AddNewTokenSubscription(ctx, testContract, "").Error.Kind)
	require.Equal(t, pkgmercury.KindInvalid,
		client.AddNewSubscription(ctx, pkgmercury.SubscriptionRequest{ContractID: "C"}).Error.Kind)
}

func TestClient_RenewToken(t *testing.T) {
	t.Parallel()

	client, query, write := setupTestClient(t, "ops@example.com", "hunter2")

	query.EXPECT().Execute(mock.Anything, pkgmercury.Request{
		Query:     Authenticate,
		Variables: map[string]any{"email": "ops@example.com", "password": "hunter2"},
	}, mock.Anything).
		Run(fillOut(`{"authenticate":{"jwtToken":"fresh-jwt"}}`)).
		Return(nil).Once()

	res := client.RenewToken(context.Background())
	require.Nil(t, res.Error)
	require.Equal(t, "fresh-jwt", res.Data.Authenticate.JwtToken)
	require.Equal(t, "fresh-jwt", client.Session().Token())

	// later write calls carry the renewed token
	write.EXPECT().PostSubscription(mock.Anything, "fresh-jwt", mock.Anything).
		Return(json.RawMessage(`{"id":1}`), nil).Once()

	sub := client.AddNewSubscription(context.Background(), pkgmercury.SubscriptionRequest{MaxSingleSize: 10})
	require.Nil(t, sub.Error)
	require.JSONEq(t, `{"id":1}`, string(sub.Data))
}

func TestClient_RenewToken_NoCredentials(t *testing.T) {
	t.Parallel()

	client, _, _ := setupTestClient(t, "", "")

	res := client.RenewToken(context.Background())

	require.NotNil(t, res.Error)
	require.Equal(t, pkgmercury.KindInvalid, res.Error.Kind)
	require.Equal(t, testToken, client.Session().Token())
}

func TestClient_RenewToken_Failures(t *testing.T) {
	t.Parallel()

	t.Run("backend error", func(t *testing.T) {
		t.Parallel()

		client, query, _ := setupTestClient(t, "ops@example.com", "wrong")
		query.EXPECT().Execute(mock.Anything, mock.Anything, mock.Anything).
			Return(pkgmercury.Errorf(pkgmercury.KindProtocol, Authenticate.Key, "invalid credentials")).Once()

		res := client.RenewToken(context.Background())
		require.NotNil(t, res.Error)
		require.Equal(t, pkgmercury.KindProtocol, res.Error.Kind)
		require.Equal(t, testToken, client.Session().Token())
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		client, query, _ := setupTestClient(t, "ops@example.com", "hunter2")
		query.EXPECT().Execute(mock.Anything, mock.Anything, mock.Anything).
			Run(fillOut(`{"authenticate":{"jwtToken":""}}`)).
			Return(nil).Once()

		res := client.RenewToken(context.Background())
		require.NotNil(t, res.Error)
		require.Equal(t, pkgmercury.KindProtocol, res.Error.Kind)
		require.Equal(t, testToken, client.Session().Token())
	})
}

func TestClient_AddNewSubscription(t *testing.T) {
	t.Parallel()

	req := pkgmercury.SubscriptionRequest{
		ContractID:    testContract,
		MaxSingleSize: 50,
		Topic1:        EncodeTopic("transfer"),
		Extra:         map[string]any{"hydrate": true},
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client, _, write := setupTestClient(t, "", "")
		write.EXPECT().PostSubscription(mock.Anything, testToken, req).
			Return(json.RawMessage(`{"id":9}`), nil).Once()

		res := client.AddNewSubscription(context.Background(), req)
		require.Nil(t, res.Error)
		require.JSONEq(t, `{"id":9}`, string(res.Data))
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		client, _, write := setupTestClient(t, "", "")
		write.EXPECT().PostSubscription(mock.Anything, testToken, req).
			Return(nil, pkgmercury.NewError(pkgmercury.KindTransport, "newsubscription",
				&pkgmercury.HTTPStatusError{StatusCode: http.StatusUnauthorized})).Once()

		res := client.AddNewSubscription(context.Background(), req)
		require.Nil(t, res.Data)
		require.NotNil(t, res.Error)
		require.Equal(t, pkgmercury.KindTransport, res.Error.Kind)
		require.Equal(t, OpAddNewSubscription, res.Error.Op)
		require.True(t, pkgmercury.IsUnauthorized(res.Error))
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()

		client, _, write := setupTestClient(t, "", "")
		write.EXPECT().PostSubscription(mock.Anything, testToken, req).Return(nil, nil).Once()

		res := client.AddNewSubscription(context.Background(), req)
		require.NotNil(t, res.Error)
		require.Equal(t, pkgmercury.KindProtocol, res.Error.Kind)
	})
}

// capturingWrite answers PostSubscription calls and captures each body.
type capturingWrite struct {
	mu     sync.Mutex
	bodies []pkgmercury.SubscriptionRequest
}

func (c *capturingWrite) respond(reply func(req pkgmercury.SubscriptionRequest) (json.RawMessage, error)) func(
	context.Context, string, interface{}) (json.RawMessage, error) {
	return func(_ context.Context, _ string, body interface{}) (json.RawMessage, error) {
		req := body.(pkgmercury.SubscriptionRequest) //nolint:forcetypeassert

		c.mu.Lock()
		c.bodies = append(c.bodies, req)
		c.mu.Unlock()

		return reply(req)
	}
}

func expectedTokenBodies() []pkgmercury.SubscriptionRequest {
	transfer := EncodeTopic("transfer")
	account := EncodeTopic(testPubKey)

	return []pkgmercury.SubscriptionRequest{
		{ContractID: testContract, MaxSingleSize: 200, Topic1: transfer, Topic2: account},
		{ContractID: testContract, MaxSingleSize: 200, Topic1: transfer, Topic3: account},
		{ContractID: testContract, MaxSingleSize: 200, Topic1: EncodeTopic("mint")},
	}
}

func TestClient_AddNewTokenSubscription_AllSucceed(t *testing.T) {
	t.Parallel()

	client, _, write := setupTestClient(t, "", "")
	captured := &capturingWrite{}

	write.EXPECT().PostSubscription(mock.Anything, testToken, mock.Anything).
		RunAndReturn(captured.respond(func(pkgmercury.SubscriptionRequest) (json.RawMessage, error) {
			return json.RawMessage(`{"id":1}`), nil
		})).Times(3)

	res := client.AddNewTokenSubscription(context.Background(), testContract, testPubKey)

	require.Nil(t, res.Error)
	require.True(t, res.Data)
	require.ElementsMatch(t, expectedTokenBodies(), captured.bodies)
}

func TestClient_AddNewTokenSubscription_PartialFailure(t *testing.T) {
	t.Parallel()

	mint := EncodeTopic("mint")

	tests := []struct {
		name  string
		reply func(req pkgmercury.SubscriptionRequest) (json.RawMessage, error)
	}{
		{
			name: "mint call fails",
			reply: func(req pkgmercury.SubscriptionRequest) (json.RawMessage, error) {
				if req.Topic1 == mint {
					return nil, pkgmercury.NewError(pkgmercury.KindTransport, "newsubscription",
						&pkgmercury.HTTPStatusError{StatusCode: http.StatusInternalServerError})
				}
				return json.RawMessage(`{"id":1}`), nil
			},
		},
		{
			name: "transfer-from payload is falsy",
			reply: func(req pkgmercury.SubscriptionRequest) (json.RawMessage, error) {
				if req.Topic3 != "" {
					return json.RawMessage(`false`), nil
				}
				return json.RawMessage(`true`), nil
			},
		},
		{
			name: "transfer-to payload is empty",
			reply: func(req pkgmercury.SubscriptionRequest) (json.RawMessage, error) {
				if req.Topic2 != "" {
					return nil, nil
				}
				return json.RawMessage(`"ok"`), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _, write := setupTestClient(t, "", "")
			captured := &capturingWrite{}

			write.EXPECT().PostSubscription(mock.Anything, testToken, mock.Anything).
				RunAndReturn(captured.respond(tt.reply)).Times(3)

			res := client.AddNewTokenSubscription(context.Background(), testContract, testPubKey)

			require.False(t, res.Data)
			require.NotNil(t, res.Error)
			require.Equal(t, pkgmercury.KindAggregate, res.Error.Kind)
			require.EqualError(t, res.Error, "Failed to subscribe to token events")

			// all three calls were made and nothing was undone
			require.ElementsMatch(t, expectedTokenBodies(), captured.bodies)
		})
	}
}

func TestClient_AddNewTokenSubscription_MaxSingleSize(t *testing.T) {
	t.Parallel()

	client, _, write := setupTestClient(t, "", "", WithMaxSingleSize(500))
	captured := &capturingWrite{}

	write.EXPECT().PostSubscription(mock.Anything, testToken, mock.Anything).
		RunAndReturn(captured.respond(func(pkgmercury.SubscriptionRequest) (json.RawMessage, error) {
			return json.RawMessage(`true`), nil
		})).Times(3)

	res := client.AddNewTokenSubscription(context.Background(), testContract, testPubKey)
	require.True(t, res.Data)

	require.Len(t, captured.bodies, 3)
	for _, body := range captured.bodies {
		require.Equal(t, 500, body.MaxSingleSize)
	}
}

func TestClient_RecordsWriteAttempts(t *testing.T) {
	t.Parallel()

	recorder := mocks.NewAttemptRecorder(t)
	client, _, write := setupTestClient(t, "", "", WithRecorder(recorder))

	mint := EncodeTopic("mint")
	write.EXPECT().PostSubscription(mock.Anything, testToken, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, body interface{}) (json.RawMessage, error) {
			if body.(pkgmercury.SubscriptionRequest).Topic1 == mint { //nolint:forcetypeassert
				return json.RawMessage(`0`), nil
			}
			return json.RawMessage(`{"id":1}`), nil
		}).Times(3)

	var mu sync.Mutex
	attempts := map[string]pkgmercury.WriteAttempt{}
	recorder.EXPECT().RecordAttempt(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, a pkgmercury.WriteAttempt) error {
			mu.Lock()
			defer mu.Unlock()
			attempts[a.Label] = a
			// a failing ledger must not change the outcome
			if a.Label == LabelTransferTo {
				return errors.New("disk full")
			}
			return nil
		}).Times(3)

	res := client.AddNewTokenSubscription(context.Background(), testContract, testPubKey)
	require.Equal(t, pkgmercury.KindAggregate, res.Error.Kind)

	require.Len(t, attempts, 3)
	require.True(t, attempts[LabelTransferTo].Accepted)
	require.True(t, attempts[LabelTransferFrom].Accepted)
	require.False(t, attempts[LabelMint].Accepted)
	require.Equal(t, OpAddNewTokenSubscription, attempts[LabelMint].Operation)
	require.JSONEq(t, `0`, string(attempts[LabelMint].Response))
}

func TestNewClientFromConfig_RenewThenWrite(t *testing.T) {
	t.Parallel()

	gqlSrv, gqlCalls := newGraphQLServer(t, http.StatusOK, `{"data":{"authenticate":{"jwtToken":"jwt-2"}}}`)
	writeSrv, writeBackend := newFakeWriteBackend(t, func(map[string]any) (int, string) {
		return http.StatusOK, `{"id":3}`
	})

	cfg := pkgconfig.MercuryConfig{
		BaseURL:         "https://api.mercurydata.app",
		GraphQLURL:      gqlSrv.URL,
		SubscriptionURL: writeSrv.URL,
		AccessKey:       "key-1",
		Email:           "ops@example.com",
		Password:        "hunter2",
		RequestTimeout:  common.NewDuration(time.Second),
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	client := NewClientFromConfig(cfg, nil, nil)
	ctx := context.Background()

	first := client.AddNewSubscription(ctx, pkgmercury.SubscriptionRequest{MaxSingleSize: 1})
	require.Nil(t, first.Error)

	renew := client.RenewToken(ctx)
	require.Nil(t, renew.Error)
	require.Len(t, gqlCalls.Calls(), 1)
	require.Empty(t, gqlCalls.Calls()[0].authorization)

	second := client.AddNewSubscription(ctx, pkgmercury.SubscriptionRequest{MaxSingleSize: 1})
	require.Nil(t, second.Error)

	calls := writeBackend.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, "Bearer key-1", calls[0].authorization)
	require.Equal(t, "Bearer jwt-2", calls[1].authorization)
}
