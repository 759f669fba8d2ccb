package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	userhttp "github.com/iothub/storefront/internal/user/delivery/http"
	"github.com/iothub/storefront/internal/wishlist/usecase/command"
	"github.com/iothub/storefront/internal/wishlist/usecase/query"
	"github.com/iothub/storefront/pkg/logger"
)

// WishlistHandler handles HTTP requests for the wishlist
type WishlistHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	clearHandler  *command.ClearWishlistHandler
	getHandler    *query.GetWishlistHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(
	addHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	clearHandler *command.ClearWishlistHandler,
	getHandler *query.GetWishlistHandler,
) *WishlistHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_wishlist_requests_total",
			Help: "Total number of wishlist requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_wishlist_request_duration_seconds",
			Help:    "Duration of wishlist requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &WishlistHandler{
		addHandler:     addHandler,
		removeHandler:  removeHandler,
		clearHandler:   clearHandler,
		getHandler:     getHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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

func (h *WishlistHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/wishlist", h.metricsMiddleware("/api/wishlist", userhttp.OptionalAuthMiddleware(h.GetWishlist))).Methods("GET")
	router.HandleFunc("/api/wishlist/items", h.metricsMiddleware("/api/wishlist/items", userhttp.OptionalAuthMiddleware(h.AddItem))).Methods("POST")
	router.HandleFunc("/api/wishlist/items/{productId}", h.metricsMiddleware("/api/wishlist/items/{productId}", userhttp.OptionalAuthMiddleware(h.RemoveItem))).Methods("DELETE")
	router.HandleFunc("/api/wishlist", h.metricsMiddleware("/api/wishlist", userhttp.OptionalAuthMiddleware(h.ClearWishlist))).Methods("DELETE")
}

// GetWishlist handles GET /api/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	wishlist, err := h.getHandler.Handle(r.Context(), query.GetWishlistQuery{UserID: userhttp.UserID(r)})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load wishlist")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load wishlist"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: wishlist})
}

// AddItem handles POST /api/wishlist/items. Adding a product that is
// already on the list is not an error; the response says so and the
// list is returned unchanged.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		UserID:    userhttp.UserID(r),
		ProductID: req.ProductID,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Uint("product_id", req.ProductID).Msg("Failed to add item to wishlist")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	message := "Item added to wishlist"
	if !result.Added {
		message = "Item already in wishlist"
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: result.Wishlist})
}

// RemoveItem handles DELETE /api/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	wishlist, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		UserID:    userhttp.UserID(r),
		ProductID: uint(productID),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to remove wishlist item")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update wishlist"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Item removed from wishlist", Data: wishlist})
}

// ClearWishlist handles DELETE /api/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.clearHandler.Handle(r.Context(), command.ClearWishlistCommand{UserID: userhttp.UserID(r)}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to clear wishlist")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to clear wishlist"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Wishlist cleared"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
