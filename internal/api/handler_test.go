package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rea1521/mahlangu-capital-bank/internal/api"
	"github.com/Rea1521/mahlangu-capital-bank/internal/config"
	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
	"github.com/Rea1521/mahlangu-capital-bank/internal/session"
)

// fakeBank is a minimal in-memory stand-in for the core banking API.
type fakeBank struct {
	mu        sync.Mutex
	accounts  map[string]map[string]any
	transfers int
	refuse    string
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		accounts: map[string]map[string]any{
			"1000000001": {
				"accountNumber": "1000000001",
				"holderName":    "Thabo Mahlangu",
				"accountType":   "SAVINGS",
				"balance":       1000.00,
				"active":        true,
			},
			"1000000002": {
				"accountNumber": "1000000002",
				"holderName":    "Lerato Dlamini",
				"accountType":   "CURRENT",
				"balance":       50.00,
				"active":        true,
			},
		},
	}
}

func (b *fakeBank) handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "cust-7", "fullName": "Thabo Mahlangu", "email": "thabo@example.com",
		})
	})

	r.Get("/accounts/customer/{id}", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode([]any{b.accounts["1000000001"]})
	})

	r.Get("/accounts/{n}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		account, ok := b.accounts[chi.URLParam(r, "n")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "Account not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(account)
	})

	r.Post("/transactions/transfer", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.refuse != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": b.refuse})
			return
		}
		b.transfers++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":            true,
			"fromAccountBalance": 500.00,
			"fromTransactionId":  "TXN-42",
			"recipientName":      "Lerato Dlamini",
			"internalTransfer":   false,
		})
	})

	return r
}

func newPortal(t *testing.T, sessionTTL time.Duration) (*httptest.Server, *fakeBank, *api.Handler) {
	t.Helper()

	bank := newFakeBank()
	backend := httptest.NewServer(bank.handler())
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		ListenAddr:      ":0",
		BackendBaseURL:  backend.URL,
		RequestTimeout:  5 * time.Second,
		CommitTimeout:   5 * time.Second,
		DebounceWindow:  time.Millisecond,
		MinLookupLength: 10,
		SessionTTL:      sessionTTL,
	}

	client := restapi.New(cfg.BackendBaseURL, backend.Client(), zap.NewNop())
	handler := api.NewHandler(client, session.NewStore(cfg.SessionTTL), cfg, zap.NewNop())

	r := chi.NewRouter()
	api.RegisterRoutes(r, handler)

	portal := httptest.NewServer(r)
	t.Cleanup(portal.Close)
	return portal, bank, handler
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, portal *httptest.Server) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, portal.URL+"/api/auth/login", "", map[string]string{
		"email": "thabo@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

type workflowBody struct {
	State       string `json:"state"`
	LastOutcome string `json:"lastOutcome"`
	Draft       struct {
		FromAccount string          `json:"fromAccount"`
		ToAccount   string          `json:"toAccount"`
		Amount      decimal.Decimal `json:"amount"`
		PINEntered  bool            `json:"pinEntered"`
	} `json:"draft"`
	Validation struct {
		Lookup          string `json:"lookup"`
		AmountValid     bool   `json:"amountValid"`
		SufficientFunds bool   `json:"sufficientFunds"`
	} `json:"validation"`
	Recipient          *struct{ HolderName string } `json:"recipient"`
	LastError          string                       `json:"lastError"`
	CompletedTransfers int64                        `json:"completedTransfers"`
}

func getWorkflow(t *testing.T, portal *httptest.Server, token string) workflowBody {
	t.Helper()

	resp := doJSON(t, http.MethodGet, portal.URL+"/api/transfer", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body workflowBody
	decode(t, resp, &body)
	return body
}

func TestAuth(t *testing.T) {
	portal, _, _ := newPortal(t, time.Minute)

	t.Run("rejects bad credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, portal.URL+"/api/auth/login", "", map[string]string{
			"email": "thabo@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected routes require a session", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, portal.URL+"/api/transfer", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		token := login(t, portal)

		resp := doJSON(t, http.MethodPost, portal.URL+"/api/auth/logout", token, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, portal.URL+"/api/transfer", token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestTransferFlow(t *testing.T) {
	portal, bank, _ := newPortal(t, time.Minute)
	token := login(t, portal)

	// build the draft field by field, the way the form does
	resp := doJSON(t, http.MethodPut, portal.URL+"/api/transfer/draft", token, map[string]any{
		"fromAccount": "1000000001",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, portal.URL+"/api/transfer/draft", token, map[string]any{
		"toAccount": "1000000002", "amount": "500", "pin": "1234", "description": "Groceries",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the recipient lookup resolves after the debounce window
	require.Eventually(t, func() bool {
		return getWorkflow(t, portal, token).Validation.Lookup == "FOUND"
	}, 2*time.Second, 5*time.Millisecond)

	wf := getWorkflow(t, portal, token)
	assert.True(t, wf.Validation.AmountValid)
	assert.True(t, wf.Validation.SufficientFunds)
	require.NotNil(t, wf.Recipient)

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/submit", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var review struct {
		IntentID   string          `json:"intentId"`
		FromHolder string          `json:"fromHolder"`
		ToHolder   string          `json:"toHolder"`
		Amount     decimal.Decimal `json:"amount"`
		Internal   bool            `json:"internalTransfer"`
	}
	decode(t, resp, &review)
	assert.NotEmpty(t, review.IntentID)
	assert.Equal(t, "Thabo Mahlangu", review.FromHolder)
	assert.Equal(t, "Lerato Dlamini", review.ToHolder)
	assert.True(t, review.Amount.Equal(decimal.NewFromInt(500)))
	assert.False(t, review.Internal)

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/confirm", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after workflowBody
	decode(t, resp, &after)
	assert.Equal(t, "EDITING", after.State)
	assert.Equal(t, "COMMITTED", after.LastOutcome)
	assert.Equal(t, "1000000001", after.Draft.FromAccount)
	assert.Empty(t, after.Draft.ToAccount)
	assert.False(t, after.Draft.PINEntered)
	assert.EqualValues(t, 1, after.CompletedTransfers)

	bank.mu.Lock()
	assert.Equal(t, 1, bank.transfers)
	bank.mu.Unlock()

	// the success toast is queued for the next poll
	resp = doJSON(t, http.MethodGet, portal.URL+"/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notices []struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	decode(t, resp, &notices)
	require.Len(t, notices, 1)
	assert.Equal(t, "SUCCESS", notices[0].Kind)
	assert.Equal(t, "Transfer successful. New balance: R500.00", notices[0].Message)
}

func TestSubmitRejections(t *testing.T) {
	portal, _, _ := newPortal(t, time.Minute)
	token := login(t, portal)

	t.Run("missing amount is unprocessable", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, portal.URL+"/api/transfer/submit", token, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		wf := getWorkflow(t, portal, token)
		assert.Equal(t, "EDITING", wf.State)
		assert.NotEmpty(t, wf.LastError)
	})

	t.Run("confirm without a frozen intent conflicts", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, portal.URL+"/api/transfer/confirm", token, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestConfirmRejectedByBackend(t *testing.T) {
	portal, bank, _ := newPortal(t, time.Minute)
	token := login(t, portal)

	resp := doJSON(t, http.MethodPut, portal.URL+"/api/transfer/draft", token, map[string]any{
		"fromAccount": "1000000001", "toAccount": "1000000002", "amount": "500", "pin": "9999",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return getWorkflow(t, portal, token).Validation.Lookup == "FOUND"
	}, 2*time.Second, 5*time.Millisecond)

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/submit", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	bank.mu.Lock()
	bank.refuse = "Invalid PIN"
	bank.mu.Unlock()

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/confirm", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	wf := getWorkflow(t, portal, token)
	assert.Equal(t, "EDITING", wf.State)
	assert.Equal(t, "FAILED", wf.LastOutcome)
	assert.Equal(t, "Invalid PIN", wf.LastError)
	// draft preserved for retry
	assert.Equal(t, "1000000002", wf.Draft.ToAccount)
	assert.True(t, wf.Draft.Amount.Equal(decimal.NewFromInt(500)))
}

func TestCancelKeepsDraft(t *testing.T) {
	portal, _, _ := newPortal(t, time.Minute)
	token := login(t, portal)

	resp := doJSON(t, http.MethodPut, portal.URL+"/api/transfer/draft", token, map[string]any{
		"fromAccount": "1000000001", "toAccount": "1000000002", "amount": "250.50", "pin": "1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return getWorkflow(t, portal, token).Validation.Lookup == "FOUND"
	}, 2*time.Second, 5*time.Millisecond)

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/submit", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, portal.URL+"/api/transfer/cancel", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wf := getWorkflow(t, portal, token)
	assert.Equal(t, "EDITING", wf.State)
	assert.Equal(t, "1000000002", wf.Draft.ToAccount)
	assert.True(t, wf.Draft.Amount.Equal(decimal.NewFromFloat(250.50)))
	assert.True(t, wf.Draft.PINEntered)
}

func TestSessionSweep(t *testing.T) {
	portal, _, handler := newPortal(t, 20*time.Millisecond)
	token := login(t, portal)

	// the abandoned session is torn down by the sweep, not by a request
	require.Eventually(t, func() bool {
		return handler.SweepExpired() == 1
	}, 2*time.Second, 5*time.Millisecond)

	resp := doJSON(t, http.MethodGet, portal.URL+"/api/transfer", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Zero(t, handler.SweepExpired())
}

func TestAccounts(t *testing.T) {
	portal, _, _ := newPortal(t, time.Minute)
	token := login(t, portal)

	t.Run("lists owned accounts", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, portal.URL+"/api/accounts", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var accounts []struct {
			AccountNumber string `json:"accountNumber"`
			HolderName    string `json:"holderName"`
		}
		decode(t, resp, &accounts)
		require.Len(t, accounts, 1)
		assert.Equal(t, "1000000001", accounts[0].AccountNumber)
	})

	t.Run("passes backend 404 through", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, portal.URL+"/api/accounts/9999999999", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
