package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"khanmedical/m/domain"
	"khanmedical/m/internal/billing"
	"khanmedical/m/internal/catalog"
	"khanmedical/m/internal/config"
	"khanmedical/m/internal/metrics"
	"khanmedical/m/internal/pos"
)

// LoginRateLimit is the number of login attempts allowed per IP per minute.
const LoginRateLimit = 10

type ctxKey string

const ctxUsername ctxKey = "username"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store     *pos.Store
	cfg       config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	validator *catalog.Validator
	now       func() time.Time
}

// New constructs a Handler. A nil metrics disables /metrics.
func New(store *pos.Store, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:     store,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		validator: catalog.NewValidator(),
		now:       time.Now,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.secureHeaders())
	r.Use(h.metrics.Middleware)

	r.Get("/health", h.health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(httprate.Limit(LoginRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/logout", h.logout)
			protected.Get("/session", h.session)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/medicines", func(r chi.Router) {
			r.Get("/", h.listMedicines)
			r.Post("/", h.createMedicine)
			r.Get("/{id}", h.getMedicine)
			r.Put("/{id}", h.updateMedicine)
			r.Delete("/{id}", h.deleteMedicine)
		})

		pr.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.listSuppliers)
			r.Post("/", h.createSupplier)
			r.Put("/{id}", h.updateSupplier)
			r.Delete("/{id}", h.deleteSupplier)
		})

		pr.Route("/customers", func(r chi.Router) {
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})

		pr.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Put("/items/{id}", h.updateCartItem)
			r.Delete("/items/{id}", h.removeCartItem)
			r.Post("/checkout", h.checkout)
		})

		pr.Route("/bills", func(r chi.Router) {
			r.Get("/", h.listBills)
			r.Get("/{billNo}", h.getBill)
			r.Get("/{billNo}/receipt", h.billReceipt)
		})

		pr.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", h.dashboard)
			r.Get("/stock", h.stockReport)
			r.Get("/sales", h.salesReport)
			r.Get("/sales.xlsx", h.salesWorkbook)
			r.Get("/stock.xlsx", h.stockWorkbook)
		})

		pr.Delete("/data", h.resetData)
	})

	return r
}

func (h *Handler) secureHeaders() func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        h.cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				h.logger.Warn("secure headers blocked request", slog.Any("error", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) resetData(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		h.respondErr(w, err)
		return
	}
	h.logger.Warn("all data cleared", slog.Any("user", r.Context().Value(ctxUsername)))
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// respondErr maps domain errors to status codes.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	var (
		stockErr *billing.StockError
		cashErr  *billing.CashError
		fieldErr *catalog.FieldErrors
	)
	switch {
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":       err.Error(),
			"medicine_id": stockErr.MedicineID,
			"available":   stockErr.Available,
		})
	case errors.As(err, &cashErr):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":    err.Error(),
			"total":    cashErr.Total.StringFixed(2),
			"received": cashErr.Received.StringFixed(2),
		})
	case errors.Is(err, billing.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &fieldErr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  err.Error(),
			"fields": fieldErr.Fields,
		})
	case errors.Is(err, pos.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, pos.ErrNotLoggedIn):
		respondError(w, http.StatusUnauthorized, "not logged in")
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) shop() domain.Shop {
	return h.cfg.Shop()
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
