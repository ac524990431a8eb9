package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/httputil"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/validator"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	users    *service.UserService
	logger   *slog.Logger
	tokenTTL time.Duration
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(users *service.UserService, logger *slog.Logger, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:    users,
		logger:   logger,
		tokenTTL: tokenTTL,
	}
}

// RegisterRequest is the JSON request body for user registration.
type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the JSON request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the account shape returned to clients. The password hash
// never leaves the service.
type userResponse struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Register handles POST /api/auth/registeruser
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Signup(r.Context(), service.SignupInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Message: "User registered successfully",
		Data:    newUserResponse(user),
	})
}

// Login handles POST /api/auth/login and POST /api/login/login. The issued
// token travels both ways: as an HttpOnly cookie for browser clients and in
// the body for API clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	payload, err := h.users.Signin(r.Context(), service.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    payload.Token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Message: "Login successful",
		Data:    payload,
	})
}
