package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	internalmercury "github.com/goran-ethernal/MercuryBridge/internal/mercury"
	"github.com/goran-ethernal/MercuryBridge/pkg/ledger"
	"github.com/goran-ethernal/MercuryBridge/pkg/mercury"
)

// Handler handles HTTP requests for the API.
type Handler struct {
	client mercury.Client
	ledger ledger.Reader
	log    *logger.Logger
}

// NewHandler creates a new API handler. ledgerReader may be nil when the ledger is disabled.
func NewHandler(client mercury.Client, ledgerReader ledger.Reader, log *logger.Logger) *Handler {
	return &Handler{
		client: client,
		ledger: ledgerReader,
		log:    log,
	}
}

// Ping answers with a plain text pong.
// @Summary Liveness probe
// @Tags Health
// @Produce plain
// @Success 200 {string} string "pong"
// @Router /ping [get]
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// Health returns the health status of the bridge.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Bridge health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC(),
		LedgerEnabled: h.ledger != nil,
	})
}

// AddSubscription creates a contract event subscription.
// @Summary Create a contract event subscription
// @Description Forwards the body to the indexing service. Unknown fields are passed through.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param body body SubscriptionBody true "Subscription request"
// @Success 200 {object} object "Indexing service response"
// @Failure 400 {object} ErrorResponse "Invalid body or failed operation"
// @Router /subscription [post]
func (h *Handler) AddSubscription(w http.ResponseWriter, r *http.Request) {
	var req mercury.SubscriptionRequest
	if err := subscriptionSchema.decode(w, r, &req); err != nil {
		respondValidationError(w, internalmercury.OpAddNewSubscription, err)
		return
	}

	respondResult(w, h.client.AddNewSubscription(r.Context(), req))
}

// ListSubscriptions lists all contract event subscriptions.
// @Summary List contract event subscriptions
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} mercury.AllSubscriptionsData
// @Failure 400 {object} ErrorResponse
// @Router /subscription [get]
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.client.GetSubscriptions(r.Context()))
}

// GetSubscription returns a single contract event by id.
// @Summary Get a contract event by id
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Contract event id"
// @Success 200 {object} mercury.SubscriptionByIDData
// @Failure 400 {object} ErrorResponse
// @Router /subscription/{id} [get]
func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.client.GetSubscriptionByID(r.Context(), r.PathValue("id")))
}

// AddTokenSubscription subscribes to the transfer and mint events of a token for an account.
// @Summary Subscribe to token events
// @Description Issues the transfer-to, transfer-from and mint subscriptions. Succeeds only if all three do.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param body body TokenSubscriptionBody true "Token and account"
// @Success 200 {boolean} boolean
// @Failure 400 {object} ErrorResponse
// @Router /subscription/token [post]
func (h *Handler) AddTokenSubscription(w http.ResponseWriter, r *http.Request) {
	var body TokenSubscriptionBody
	if err := tokenSubscriptionSchema.decode(w, r, &body); err != nil {
		respondValidationError(w, internalmercury.OpAddNewTokenSubscription, err)
		return
	}

	respondResult(w, h.client.AddNewTokenSubscription(r.Context(), body.ContractID, body.PubKey))
}

// AddAccountSubscription subscribes to every change of an account.
// @Summary Subscribe to an account
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param body body AccountSubscriptionBody true "Account"
// @Success 200 {object} mercury.AccountSubscriptionData
// @Failure 400 {object} ErrorResponse
// @Router /subscription/account [post]
func (h *Handler) AddAccountSubscription(w http.ResponseWriter, r *http.Request) {
	var body AccountSubscriptionBody
	if err := accountSubscriptionSchema.decode(w, r, &body); err != nil {
		respondValidationError(w, internalmercury.OpAddNewAccountSubscription, err)
		return
	}

	respondResult(w, h.client.AddNewAccountSubscription(r.Context(), body.PubKey))
}

// GetAccountHistory returns the account creations, merges and payments of an account.
// @Summary Get account history
// @Tags Accounts
// @Produce json
// @Param pubKey path string true "Account public key"
// @Success 200 {object} mercury.AccountHistoryData
// @Failure 400 {object} ErrorResponse
// @Router /account/{pubKey}/history [get]
func (h *Handler) GetAccountHistory(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.client.GetAccountHistory(r.Context(), r.PathValue("pubKey")))
}

// RenewToken authenticates with the configured credentials and replaces the session token.
// @Summary Renew the indexing service token
// @Tags Session
// @Produce json
// @Success 200 {object} mercury.AuthenticateData
// @Failure 400 {object} ErrorResponse
// @Router /token/renew [post]
func (h *Handler) RenewToken(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.client.RenewToken(r.Context()))
}

// ListLedger returns recorded write-channel attempts, newest first.
// @Summary List recorded subscription attempts
// @Tags Ledger
// @Produce json
// @Param limit query int false "Maximum number of entries to return" default(50)
// @Param offset query int false "Number of entries to skip" default(0)
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Ledger disabled"
// @Failure 500 {object} ErrorResponse
// @Router /ledger [get]
func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	if h.ledger == nil {
		respondError(w, http.StatusNotFound, string(mercury.KindConfig), "ledger is not enabled")
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, string(mercury.KindInvalid), err.Error())
		return
	}

	entries, err := h.ledger.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Errorf("failed to list ledger entries: %v", err)
		respondError(w, http.StatusInternalServerError, "internal", "failed to list ledger entries")
		return
	}

	if entries == nil {
		entries = []ledger.Entry{}
	}

	respondJSON(w, http.StatusOK, LedgerResponse{
		Entries: entries,
		Pagination: PaginationResult{
			Limit:   limit,
			Offset:  offset,
			HasMore: len(entries) == limit,
		},
	})
}

// parsePagination reads limit and offset from the query string.
func parsePagination(r *http.Request) (int, int, error) {
	limit, offset := ledger.DefaultListLimit, 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > ledger.MaxListLimit {
			return 0, 0, fmt.Errorf("invalid limit: must be between 1 and %d", ledger.MaxListLimit)
		}
		limit = l
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		o, err := strconv.Atoi(offsetStr)
		if err != nil || o < 0 {
			return 0, 0, fmt.Errorf("invalid offset: must be non-negative")
		}
		offset = o
	}

	return limit, offset, nil
}

// respondResult maps an operation result to 200 with the data or 400 with the error.
func respondResult[T any](w http.ResponseWriter, res mercury.Result[T]) {
	if res.Failed() {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: res.Error.Error(),
			Kind:  string(res.Error.Kind),
			Op:    res.Error.Op,
		})
		return
	}

	respondJSON(w, http.StatusOK, res.Data)
}

func respondValidationError(w http.ResponseWriter, op string, err error) {
	resp := ErrorResponse{
		Error: err.Error(),
		Kind:  string(mercury.KindInvalid),
		Op:    op,
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		resp.Details = vErr.Details
	}

	respondJSON(w, http.StatusBadRequest, resp)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// encode first so that a failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Kind:  kind,
	})
}
