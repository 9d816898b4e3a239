package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/middleware"
	"ticketbox-terminal/internal/services"
)

// RouterDeps are the services exposed over the collaborator API
type RouterDeps struct {
	Catalog      services.CatalogServiceInterface
	Transactions services.TransactionServiceInterface
	Encoder      services.CodeEncoder
	Logger       *zap.Logger
	Clock        clock.Clock
}

// NewRouter builds the chi router for the collaborator API
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := NewCatalogHandler(deps.Catalog, logger)
	transactionHandler := NewTransactionHandler(deps.Transactions)
	ticketHandler := NewTicketHandler(deps.Encoder, logger)
	writeLimiter := middleware.NewRateLimiter(30, time.Minute, deps.Clock)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.ErrorHandlingMiddleware(logger))
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(chimiddleware.Timeout(15 * time.Second))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", catalogHandler.ListEvents)
			r.With(writeLimiter.Middleware).Post("/", catalogHandler.CreateEvent)
			r.Get("/{id}", catalogHandler.GetEvent)
		})
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/transactions", transactionHandler.ListTransactions)
		r.Get("/tickets/{ticketID}/qr.png", ticketHandler.QRCode)
	})

	return r
}
