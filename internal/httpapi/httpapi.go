package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/application/command"
	"github.com/venicelab/orders/internal/application/query"
	"github.com/venicelab/orders/internal/domain"
	"github.com/venicelab/orders/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type CreateOrder interface {
	Handle(ctx context.Context, in command.CreateOrderInput) (*command.CreateOrderResult, error)
}

type GetOrder interface {
	Handle(ctx context.Context, id uuid.UUID) (*query.OrderView, error)
}

type Server struct {
	create  CreateOrder
	get     GetOrder
	tokens  *TokenService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(create CreateOrder, get GetOrder, tokens *TokenService, logger *zap.Logger, metrics observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	s := &Server{
		create:  create,
		get:     get,
		tokens:  tokens,
		router:  chi.NewRouter(),
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(ServerTimingApp(s.metrics))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/api/auth/login", s.login)

	s.router.Group(func(r chi.Router) {
		r.Use(s.tokens.Middleware)
		r.Post("/api/orders", s.createOrder)
		r.Get("/api/orders/{id}", s.getOrder)
	})
}

type createItemRequest struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	CustomerID uuid.UUID           `json:"customer_id"`
	Items      []createItemRequest `json:"items"`
}

type createOrderResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Message string    `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "bad json"})
		return
	}

	in := command.CreateOrderInput{CustomerID: req.CustomerID}
	for _, it := range req.Items {
		in.Items = append(in.Items, command.ItemInput{
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	res, err := s.create.Handle(r.Context(), in)
	switch {
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, command.ErrEventNotPublished):
		// Order durable, notification uncertain. Still a create.
		writeJSON(w, http.StatusCreated, createOrderResponse{
			OrderID: res.OrderID,
			Message: "order created, billing notification delayed",
		})
	case err != nil:
		s.logger.Error("create order failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "service error"})
	default:
		writeJSON(w, http.StatusCreated, createOrderResponse{
			OrderID: res.OrderID,
			Message: "order created",
		})
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "order id must be a uuid"})
		return
	}

	view, err := s.get.Handle(r.Context(), id)
	if err != nil {
		s.logger.Error("get order failed",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "service error"})
		return
	}
	if view == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}
