package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
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

type AdminOrderStore interface {
	ListAll(ctx context.Context) ([]orders.AdminOrder, error)
	UpdateStatus(ctx context.Context, orderID int64, status orders.Status) (string, error)
}

type CatalogStore interface {
	CreatePizzaType(ctx context.Context, name string, price float64, entries []catalog.BOMEntry) (int64, error)
	ListPizzaTypes(ctx context.Context) ([]catalog.PizzaType, error)
	DeletePizzaType(ctx context.Context, id int64) error
	ListIngredients(ctx context.Context) ([]catalog.Ingredient, error)
	AddIngredient(ctx context.Context, name string, stock int) error
	UpdateIngredient(ctx context.Context, id int64, name string, stock int) error
	PizzaSales(ctx context.Context) ([]catalog.PizzaSales, error)
	StockLevels(ctx context.Context) ([]catalog.StockLevel, error)
}

type AdminHandler struct {
	Orders   AdminOrderStore
	Catalog  CatalogStore
	Producer *kafkax.Producer // pizza.order.status
	Redis    *redis.Client
	Tokens   *auth.TokenCodec
	Service  string
}

type updateStatusReq struct {
	Status orders.Status `json:"status"`
}

type ingredientReq struct {
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}

type createPizzaReq struct {
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Ingredients []catalog.BOMEntry `json:"ingredients"`
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.Tokens.Authenticate)
		r.Use(auth.RequireRole(auth.RoleOwner))

		r.Get("/orders", h.listOrders)
		r.Put("/orders/{id}/status", h.updateStatus)

		r.Get("/ingredients", h.listIngredients)
		r.Post("/ingredients", h.addIngredient)
		r.Put("/ingredients/{id}", h.updateIngredient)

		r.Get("/pizzas", h.listPizzas)
		r.Post("/pizzas", h.createPizza)
		r.Delete("/pizzas/{id}", h.deletePizza)

		r.Get("/analytics/pizza-sales", h.pizzaSales)
		r.Get("/analytics/stock-levels", h.stockLevels)
	})
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Orders.ListAll(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching orders"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	refID, err := h.Orders.UpdateStatus(ctx, orderID, req.Status)
	switch {
	case errors.Is(err, orders.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Update failed"})
		return
	}

	if refID != "" {
		// stale cache out, event to the kitchen feed
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyTrack, refID)).Err()
		h.publishStatus(r, orderID, refID, req.Status)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *AdminHandler) publishStatus(r *http.Request, orderID int64, refID string, status orders.Status) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: refID,
		Payload: kafkax.MustMarshal(orders.StatusChangedPayload{
			OrderID:     orderID,
			ReferenceID: refID,
			Status:      status,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(refID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *AdminHandler) listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Catalog.ListIngredients(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching ingredients"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) addIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.StockQuantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Catalog.AddIngredient(ctx, req.Name, req.StockQuantity); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Add failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ingredient added"})
}

func (h *AdminHandler) updateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ingredient id"})
		return
	}
	var req ingredientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.StockQuantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Catalog.UpdateIngredient(ctx, id, req.Name, req.StockQuantity); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Update failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ingredient updated"})
}

func (h *AdminHandler) listPizzas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Catalog.ListPizzaTypes(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching pizza types"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) createPizza(w http.ResponseWriter, r *http.Request) {
	var req createPizzaReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := h.Catalog.CreatePizzaType(ctx, req.Name, req.Price, req.Ingredients)
	switch {
	case errors.Is(err, catalog.ErrNoIngredients), errors.Is(err, catalog.ErrInvalidPrice):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Pizza insert failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Pizza type created"})
	}
}

func (h *AdminHandler) deletePizza(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid pizza id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.DeletePizzaType(ctx, id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Delete failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Pizza type deleted"})
}

func (h *AdminHandler) pizzaSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Catalog.PizzaSales(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Analytics error"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) stockLevels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Catalog.StockLevels(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Stock error"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}
