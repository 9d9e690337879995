package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Rea1521/mahlangu-capital-bank/internal/config"
	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/toast"
	impl_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/impl/usecase/transfer"
	port_platform "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/platform"
	port_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/ports/usecase/transfer"
	"github.com/Rea1521/mahlangu-capital-bank/internal/session"
)

const sessionHeader = "X-Session-Token"

type ctxKey int

const sessionKey ctxKey = iota

// portalSession is everything the portal keeps alive for one signed-in
// customer: their scoped backend client, their transfer workflow and the
// toast feed the browser polls.
type portalSession struct {
	ctx        session.Context
	client     *restapi.Client
	workflow   port_transfer.TransferWorkflow
	dispatcher *impl_transfer.Dispatcher
	feed       *toast.Feed
	completed  atomic.Int64
}

// Handler is the portal's HTTP surface.
type Handler struct {
	client   *restapi.Client
	sessions *session.Store
	cfg      *config.Config
	log      *zap.Logger
	validate *validator.Validate

	mu    sync.Mutex
	users map[string]*portalSession
}

func NewHandler(client *restapi.Client, sessions *session.Store, cfg *config.Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		client:   client,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
		users:    make(map[string]*portalSession),
	}
}

// withSession authenticates the request against the session store and hangs
// the portal session off the request context.
func (h *Handler) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(sessionHeader)
		if token == "" {
			h.writeError(w, http.StatusUnauthorized, "session token required")
			return
		}

		if _, ok := h.sessions.Load(token); !ok {
			h.dropSession(token)
			h.writeError(w, http.StatusUnauthorized, "session expired")
			return
		}

		h.mu.Lock()
		ps, ok := h.users[token]
		h.mu.Unlock()
		if !ok {
			h.writeError(w, http.StatusUnauthorized, "session expired")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, ps)))
	}
}

func sessionFrom(r *http.Request) *portalSession {
	ps, _ := r.Context().Value(sessionKey).(*portalSession)
	return ps
}

func (h *Handler) openSession(ctx context.Context, customer session.Customer) (*portalSession, error) {
	sc := h.sessions.Save(customer)
	client := h.client.ForCustomer(customer.ID)

	owned := []string{}
	accounts, err := client.CustomerAccounts(ctx, customer.ID)
	if err != nil {
		// internal-transfer labeling degrades without the owned set,
		// everything else still works
		h.log.Warn("could not load owned accounts", zap.String("customer", customer.ID), zap.Error(err))
	}
	for _, a := range accounts {
		owned = append(owned, a.AccountNumber)
	}

	ps := &portalSession{
		ctx:    sc,
		client: client,
		feed:   toast.NewFeed(0),
	}
	ps.workflow = impl_transfer.NewController(impl_transfer.Deps{
		Directory: client,
		Executor:  client,
		Clock:     port_platform.RealClock{},
		IDs:       port_platform.UUIDGenerator{},
		Scheduler: port_platform.TimerScheduler{},
		Logger:    h.log.With(zap.String("component", "TransferWorkflow"), zap.String("customer", customer.ID)),
	}, owned, impl_transfer.Config{
		DebounceWindow:  h.cfg.DebounceWindow,
		MinLookupLength: h.cfg.MinLookupLength,
		CommitTimeout:   h.cfg.CommitTimeout,
	})
	ps.dispatcher = impl_transfer.NewDispatcher(
		toast.Multi{toast.NewLogNotifier(h.log.With(zap.String("component", "Notifier"))), ps.feed},
		func() { ps.completed.Add(1) },
		h.log,
	)

	h.mu.Lock()
	h.users[sc.Token] = ps
	h.mu.Unlock()

	return ps, nil
}

func (h *Handler) dropSession(token string) {
	h.sessions.Clear(token)

	h.mu.Lock()
	ps, ok := h.users[token]
	delete(h.users, token)
	h.mu.Unlock()

	if ok {
		ps.workflow.Close()
	}
}

// SweepExpired tears down the portal sessions whose tokens have expired
// without a request ever arriving to notice. Returns how many were dropped.
func (h *Handler) SweepExpired() int {
	expired := h.sessions.Sweep()
	for _, token := range expired {
		h.dropSession(token)
	}
	return len(expired)
}

// dispatch drains workflow events after any workflow call.
func (h *Handler) dispatch(ctx context.Context, ps *portalSession) {
	ps.dispatcher.Dispatch(ctx, ps.workflow.PullEvents())
}

func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("encode response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeWorkflowError maps workflow failures onto HTTP statuses: state
// machine refusals are conflicts, advisory rejections are unprocessable,
// everything else is a bad gateway.
func (h *Handler) writeWorkflowError(w http.ResponseWriter, err error) {
	_, msg := domain_transfer.Classify(err)

	switch {
	case errors.Is(err, domain_transfer.ErrInvalidStateTransition):
		h.writeError(w, http.StatusConflict, "operation not allowed in the current workflow state")
	case errors.Is(err, domain_transfer.ErrInvalidAmount),
		errors.Is(err, domain_transfer.ErrRecipientUnresolved),
		errors.Is(err, domain_transfer.ErrRecipientInactive),
		errors.Is(err, domain_transfer.ErrSenderUnresolved),
		errors.Is(err, domain_transfer.ErrInsufficientFunds),
		errors.Is(err, domain_transfer.ErrSelfTransfer),
		errors.Is(err, domain_transfer.ErrInvalidPIN):
		h.writeError(w, http.StatusUnprocessableEntity, msg)
	default:
		var rej *domain_transfer.Rejection
		if errors.As(err, &rej) {
			h.writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		h.writeError(w, http.StatusBadGateway, msg)
	}
}

// writeBackendError surfaces proxied backend failures.
func (h *Handler) writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *restapi.APIError
	if errors.As(err, &apiErr) {
		h.writeError(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	h.writeError(w, http.StatusBadGateway, "banking service unavailable")
}
