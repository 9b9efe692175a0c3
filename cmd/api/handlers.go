package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"orderdesk/order"
	"orderdesk/pkg/config"
	"orderdesk/pkg/invoice"
	"orderdesk/pkg/logger"
	"orderdesk/pkg/otel"
	"orderdesk/pkg/receipt"
	"orderdesk/pkg/sequence"
)

// notifier sends the rendered receipt for an order. Satisfied by
// mailer.Mailer and by test doubles.
type notifier interface {
	Send(ctx context.Context, o order.Order, attachment string) error
}

// app holds the pipeline collaborators for the active deployment variant.
// Exactly one of the two branches is wired: renderer+notifier for the email
// backend, gateway for the square backend.
type app struct {
	log      *logger.Logger
	backend  config.Backend
	numbers  sequence.Source
	renderer *receipt.Renderer
	notifier notifier
	gateway  invoice.Gateway
	now      func() time.Time
}

type orderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber,omitempty"`
	OrderID     string `json:"orderId,omitempty"`
	InvoiceID   string `json:"invoiceId,omitempty"`
	InvoiceURL  string `json:"invoiceUrl,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// routes builds the HTTP surface: the order endpoint under both historical
// paths, swagger, health, and the static storefront.
func (a *app) routes(staticDir string, tracer trace.Tracer) http.Handler {
	r := mux.NewRouter()
	r.Use(traceMiddleware(tracer))
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	sub := r.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/create-order", a.createOrderHandler).Methods(http.MethodPost)
	sub.HandleFunc("/create-invoice", a.createOrderHandler).Methods(http.MethodPost)

	r.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
}

// createOrderHandler runs the request-to-receipt pipeline: decode, validate,
// then hand the order to the configured backend branch.
// @Summary Create order
// @Description Accepts a cart submission and creates an invoice or emails a receipt
// @Accept json
// @Produce json
// @Param request body order.Request true "Cart submission"
// @Success 200 {object} orderResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/create-order [post]
func (a *app) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req order.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := order.ValidateRequest(req); err != nil {
		var verr *order.ValidationError
		msg := "invalid request"
		if errors.As(err, &verr) {
			msg = verr.Error()
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	number, err := a.numbers.Next(ctx)
	if err != nil {
		a.log.Error(ctx, "issuing order number", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not create order"})
		return
	}
	o := order.New(number, req, a.now())

	if a.backend == config.BackendSquare {
		a.submitInvoice(ctx, w, o)
		return
	}
	a.emailReceipt(ctx, w, o)
}

// emailReceipt renders the PDF receipt and mails it. The artifact is removed
// on every exit path, including send failures.
func (a *app) emailReceipt(ctx context.Context, w http.ResponseWriter, o order.Order) {
	ctx, span := otel.AddSpan(ctx, "emailReceipt")
	defer span.End()

	f, err := a.renderer.Render(o)
	if err != nil {
		a.log.Error(ctx, "rendering receipt", "order", o.Number, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not generate receipt"})
		return
	}
	defer func() {
		if err := f.Remove(); err != nil {
			a.log.Warn(ctx, "removing receipt artifact", "path", f.Path(), "error", err)
		}
	}()

	if err := a.notifier.Send(ctx, o, f.Path()); err != nil {
		a.log.Error(ctx, "sending receipt", "order", o.Number, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not send receipt"})
		return
	}

	a.log.Info(ctx, "order received", "order", o.Number, "customer", o.Customer.Email)
	respondJSON(w, http.StatusOK, orderResponse{Success: true, OrderNumber: o.Number})
}

// submitInvoice creates the invoice with the provider. Provider detail stays
// in the log; the client gets a generic message. A customer or order created
// before a failed invoice call is not rolled back.
func (a *app) submitInvoice(ctx context.Context, w http.ResponseWriter, o order.Order) {
	ctx, span := otel.AddSpan(ctx, "submitInvoice")
	defer span.End()

	inv, err := a.gateway.CreateInvoice(ctx, o)
	if err != nil {
		a.log.Error(ctx, "creating invoice", "order", o.Number, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not create invoice"})
		return
	}

	a.log.Info(ctx, "invoice created", "order", o.Number, "invoice", inv.ID)
	respondJSON(w, http.StatusOK, orderResponse{
		Success:     true,
		OrderNumber: o.Number,
		OrderID:     inv.OrderID,
		InvoiceID:   inv.ID,
		InvoiceURL:  inv.PublicURL,
	})
}

// healthzHandler reports liveness.
// @Summary Health check
// @Produce json
// @Success 200
// @Router /healthz [get]
func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.InjectTracing(r.Context(), tracer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
