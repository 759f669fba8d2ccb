package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iothub/storefront/internal/order/usecase/command"
	"github.com/iothub/storefront/internal/order/usecase/query"
	userhttp "github.com/iothub/storefront/internal/user/delivery/http"
	"github.com/iothub/storefront/pkg/logger"
)

// OrderHandler handles HTTP requests for orders. Placing an order
// requires an authenticated caller; it converts the caller's cart into
// an order and hands back payment and inquiry links.
type OrderHandler struct {
	placeHandler  *command.PlaceOrderHandler
	statusHandler *command.UpdateStatusHandler
	getHandler    *query.GetOrderHandler
	listHandler   *query.ListOrdersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
	orderValue     prometheus.Histogram
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	placeHandler *command.PlaceOrderHandler,
	statusHandler *command.UpdateStatusHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_requests_total",
			Help: "Total number of order requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_order_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	orderValue := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_value_inr",
			Help:    "Value of placed orders in INR",
			Buckets: []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)
	prometheus.MustRegister(orderValue)

	return &OrderHandler{
		placeHandler:   placeHandler,
		statusHandler:  statusHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		ordersPlaced:   ordersPlaced,
		orderValue:     orderValue,
	}
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

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", userhttp.AuthMiddleware(h.PlaceOrder))).Methods("POST")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", userhttp.AuthMiddleware(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{reference}", h.metricsMiddleware("/api/orders/{reference}", userhttp.AuthMiddleware(h.GetOrder))).Methods("GET")

	router.HandleFunc("/api/admin/orders", h.metricsMiddleware("/api/admin/orders", userhttp.AdminMiddleware(h.ListAllOrders))).Methods("GET")
	router.HandleFunc("/api/admin/orders/{id}/status", h.metricsMiddleware("/api/admin/orders/{id}/status", userhttp.AdminMiddleware(h.UpdateStatus))).Methods("PUT")
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.placeHandler.Handle(r.Context(), command.PlaceOrderCommand{UserID: userhttp.UserID(r)})
	if err != nil {
		if strings.Contains(err.Error(), "empty") {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Cart is empty"})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to place order")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to place order"})
		return
	}

	h.ordersPlaced.Inc()
	h.orderValue.Observe(result.Order.Total)

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Order placed successfully", Data: result})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		UserID: userhttp.UserID(r),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// GetOrder handles GET /api/orders/{reference}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getHandler.Handle(query.GetOrderQuery{
		Reference: mux.Vars(r)["reference"],
		UserID:    userhttp.UserID(r),
	})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// ListAllOrders handles GET /api/admin/orders
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.statusHandler.Handle(command.UpdateStatusCommand{ID: uint(id), Status: req.Status}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Order status updated"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
