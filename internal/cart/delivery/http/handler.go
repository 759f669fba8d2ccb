package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/internal/cart/usecase/command"
	"github.com/iothub/storefront/internal/cart/usecase/query"
	userhttp "github.com/iothub/storefront/internal/user/delivery/http"
	"github.com/iothub/storefront/pkg/logger"
)

// CartHandler handles HTTP requests for the shopping cart. All routes
// accept anonymous callers; an authenticated caller operates on their
// own cart, everyone else shares the anonymous one.
type CartHandler struct {
	addHandler      *command.AddItemHandler
	removeHandler   *command.RemoveItemHandler
	quantityHandler *command.UpdateQuantityHandler
	clearHandler    *command.ClearCartHandler
	getHandler      *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	itemsAdded     prometheus.Counter
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	addHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	quantityHandler *command.UpdateQuantityHandler,
	clearHandler *command.ClearCartHandler,
	getHandler *query.GetCartHandler,
) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	itemsAdded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_items_added_total",
			Help: "Total number of items added to carts",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(itemsAdded)

	return &CartHandler{
		addHandler:      addHandler,
		removeHandler:   removeHandler,
		quantityHandler: quantityHandler,
		clearHandler:    clearHandler,
		getHandler:      getHandler,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		itemsAdded:      itemsAdded,
	}
}

// CartView is the cart as rendered to clients: the cart state plus the
// unit count shown on the cart badge
type CartView struct {
	*domain.Cart
	Count int `json:"count"`
}

func newCartView(cart *domain.Cart) CartView {
	return CartView{Cart: cart, Count: cart.Count()}
}

// Response is the standard HTTP response envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", userhttp.OptionalAuthMiddleware(h.GetCart))).Methods("GET")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", userhttp.OptionalAuthMiddleware(h.AddItem))).Methods("POST")
	router.HandleFunc("/api/cart/items/{productId}", h.metricsMiddleware("/api/cart/items/{productId}", userhttp.OptionalAuthMiddleware(h.UpdateQuantity))).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productId}", h.metricsMiddleware("/api/cart/items/{productId}", userhttp.OptionalAuthMiddleware(h.RemoveItem))).Methods("DELETE")
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", userhttp.OptionalAuthMiddleware(h.ClearCart))).Methods("DELETE")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.getHandler.Handle(r.Context(), query.GetCartQuery{UserID: userhttp.UserID(r)})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load cart")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: newCartView(cart)})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cart, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		UserID:    userhttp.UserID(r),
		ProductID: req.ProductID,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Uint("product_id", req.ProductID).Msg("Failed to add item to cart")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.itemsAdded.Inc()
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Item added to cart", Data: newCartView(cart)})
}

// UpdateQuantity handles PUT /api/cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cart, err := h.quantityHandler.Handle(r.Context(), command.UpdateQuantityCommand{
		UserID:    userhttp.UserID(r),
		ProductID: uint(productID),
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update cart quantity")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: newCartView(cart)})
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	cart, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		UserID:    userhttp.UserID(r),
		ProductID: uint(productID),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to remove cart item")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Item removed from cart", Data: newCartView(cart)})
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.clearHandler.Handle(r.Context(), command.ClearCartCommand{UserID: userhttp.UserID(r)}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to clear cart")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to clear cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Cart cleared"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
