package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	otpcommand "github.com/iothub/storefront/internal/otp/usecase/command"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/internal/user/usecase/command"
	"github.com/iothub/storefront/internal/user/usecase/query"
	"github.com/iothub/storefront/pkg/logger"
)

// loginTimeout bounds the login round-trip; the request fails rather
// than hang when the profile store stalls
const loginTimeout = 10 * time.Second

// UserHandler handles HTTP requests for authentication and profiles
type UserHandler struct {
	// Command handlers
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	oauthHandler      *command.OAuthLoginHandler
	logoutHandler     *command.LogoutUserHandler
	verifyHandler     *command.VerifyAuthHandler
	requestOTPHandler *otpcommand.RequestOTPHandler
	verifyOTPHandler  *otpcommand.VerifyOTPHandler

	// Query handlers
	profileHandler   *query.GetProfileHandler
	rehydrateHandler *query.RehydrateSessionHandler

	repo           domain.ProfileRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	profileGauge   prometheus.Gauge
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	oauthHandler *command.OAuthLoginHandler,
	logoutHandler *command.LogoutUserHandler,
	verifyHandler *command.VerifyAuthHandler,
	requestOTPHandler *otpcommand.RequestOTPHandler,
	verifyOTPHandler *otpcommand.VerifyOTPHandler,
	profileHandler *query.GetProfileHandler,
	rehydrateHandler *query.RehydrateSessionHandler,
	repo domain.ProfileRepository,
) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_requests_total",
			Help: "Total number of auth requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_auth_request_duration_seconds",
			Help:    "Duration of auth requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	profileGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_profiles_total",
			Help: "Number of registered profiles",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(profileGauge)

	return &UserHandler{
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		oauthHandler:      oauthHandler,
		logoutHandler:     logoutHandler,
		verifyHandler:     verifyHandler,
		requestOTPHandler: requestOTPHandler,
		verifyOTPHandler:  verifyOTPHandler,
		profileHandler:    profileHandler,
		rehydrateHandler:  rehydrateHandler,
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		profileGauge:      profileGauge,
	}
}

// Response is the standard HTTP response envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// RegisterRoutes registers all auth routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/oauth/callback", h.metricsMiddleware("/auth/oauth/callback", h.OAuthCallback)).Methods("POST")
	router.HandleFunc("/auth/logout", h.metricsMiddleware("/auth/logout", AuthMiddleware(h.Logout))).Methods("POST")
	router.HandleFunc("/auth/verify", h.metricsMiddleware("/auth/verify", OptionalAuthMiddleware(h.Verify))).Methods("GET")
	router.HandleFunc("/auth/session", h.metricsMiddleware("/auth/session", OptionalAuthMiddleware(h.Session))).Methods("GET")
	router.HandleFunc("/auth/otp/request", h.metricsMiddleware("/auth/otp/request", h.RequestOTP)).Methods("POST")
	router.HandleFunc("/auth/otp/verify", h.metricsMiddleware("/auth/otp/verify", h.VerifyOTP)).Methods("POST")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", AuthMiddleware(h.GetProfile))).Methods("GET")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	profile, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.updateProfileGauge()
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Registered successfully", Data: profile})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), loginTimeout)
	defer cancel()

	response, err := h.loginHandler.Handle(ctx, command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			respondJSON(w, http.StatusGatewayTimeout, Response{Success: false, Error: "Login timed out"})
			return
		}
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: response})
}

// OAuthCallback handles POST /auth/oauth/callback
func (h *UserHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string            `json:"provider"`
		Subject  string            `json:"subject"`
		Email    string            `json:"email"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	response, err := h.oauthHandler.Handle(r.Context(), command.OAuthLoginCommand{
		Provider: req.Provider,
		Subject:  req.Subject,
		Email:    req.Email,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	h.updateProfileGauge()
	respondJSON(w, http.StatusOK, Response{Success: true, Data: response})
}

// Logout handles POST /auth/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutUserCommand{UserID: userID}); err != nil {
		// Logout never fails the caller; local state always wins
		logger.Warn(r.Context()).Err(err).Msg("Logout cleanup error")
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// Verify handles GET /auth/verify
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenKey).(string)
	authenticated := h.verifyHandler.Handle(r.Context(), command.VerifyAuthCommand{
		UserID: UserID(r),
		Token:  token,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]bool{"authenticated": authenticated},
	})
}

// Session handles GET /auth/session
func (h *UserHandler) Session(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(TokenKey).(string)
	sess, err := h.rehydrateHandler.Handle(r.Context(), query.RehydrateSessionQuery{
		UserID: UserID(r),
		Token:  token,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to restore session"})
		return
	}
	if sess == nil {
		respondJSON(w, http.StatusOK, Response{Success: true, Data: nil})
		return
	}

	// Flag sessions near expiry so clients can renew before they lapse
	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"session":       sess,
		"expiring_soon": sess.ExpiringSoon(time.Now()),
	}})
}

// RequestOTP handles POST /auth/otp/request
func (h *UserHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	v, err := h.requestOTPHandler.Handle(r.Context(), otpcommand.RequestOTPCommand{Phone: req.Phone})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Verification code sent",
		Data:    map[string]interface{}{"expires_at": v.ExpiresAt},
	})
}

// VerifyOTP handles POST /auth/otp/verify
func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.verifyOTPHandler.Handle(otpcommand.VerifyOTPCommand{Phone: req.Phone, Code: req.Code}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Phone verified"})
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileHandler.Handle(query.GetProfileQuery{ID: UserID(r)})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

func (h *UserHandler) updateProfileGauge() {
	if count, err := h.repo.Count(); err == nil {
		h.profileGauge.Set(float64(count))
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
