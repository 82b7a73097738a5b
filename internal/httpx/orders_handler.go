package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/slicehouse/go-pizza-orders/internal/auth"
	"github.com/slicehouse/go-pizza-orders/internal/catalog"
	kafkax "github.com/slicehouse/go-pizza-orders/internal/kafka"
	"github.com/slicehouse/go-pizza-orders/internal/orders"
	"github.com/slicehouse/go-pizza-orders/internal/redisx"
)

type OrderStore interface {
	PlaceOrder(ctx context.Context, customerID int64, cart []orders.CartLine) (string, error)
	TrackByReference(ctx context.Context, refID string) (*orders.Tracking, error)
	ListByCustomer(ctx context.Context, userID int64) ([]orders.CustomerOrder, error)
}

type MenuStore interface {
	ListPizzaTypes(ctx context.Context) ([]catalog.PizzaType, error)
}

type OrdersHandler struct {
	Store    OrderStore
	Menu     MenuStore
	Producer *kafkax.Producer // pizza.order.placed
	Redis    *redis.Client
	Tokens   *auth.TokenCodec
	Service  string
}

type placeOrderReq struct {
	Items []orders.CartLine `json:"items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/track/{refId}", h.track) // public tracking widget

		r.Group(func(r chi.Router) {
			r.Use(h.Tokens.Authenticate)
			r.Use(auth.RequireRole(auth.RoleCustomer))
			r.Get("/pizzas", h.listPizzas)
			r.Post("/place", h.placeOrder)
			r.Get("/my-orders", h.myOrders)
		})
	})
}

func (h *OrdersHandler) listPizzas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Menu.ListPizzaTypes(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching pizzas"})
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	refID, err := h.Store.PlaceOrder(ctx, id.ID, req.Items)
	var short *orders.InsufficientStockError
	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
		return
	case errors.As(err, &short):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Insufficient stock for ingredient: " + short.Ingredient,
		})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Order creation failed"})
		return
	}

	h.publishPlaced(r, id.ID, refID, req.Items)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Order placed!",
		"referenceId": refID,
	})
}

func (h *OrdersHandler) publishPlaced(r *http.Request, userID int64, refID string, items []orders.CartLine) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: refID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			ReferenceID: refID,
			UserID:      userID,
			Items:       items,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(refID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) track(w http.ResponseWriter, r *http.Request) {
	refID := chi.URLParam(r, "refId")
	if refID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing reference id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache first; a Redis failure just falls through to the database
	key := fmt.Sprintf(redisx.KeyTrack, refID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s))
		return
	}

	t, err := h.Store.TrackByReference(ctx, refID)
	if errors.Is(err, orders.ErrOrderNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Tracking failed"})
		return
	}

	b, _ := json.Marshal(t)
	_ = h.Redis.Set(ctx, key, b, redisx.TTLTrackCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *OrdersHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.ListByCustomer(ctx, id.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching orders"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}
