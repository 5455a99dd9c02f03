package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/domain"
	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/platform/auth"
	"github.com/veritaslogistics/veritas-api/internal/platform/mailer"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/internal/utils"
	"github.com/veritaslogistics/veritas-api/pkg/events"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

type AuthHandler struct {
	Store     *store.UserStore
	Bus       events.Publisher
	Mail      mailer.Service
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(s *store.UserStore, bus events.Publisher, mail mailer.Service, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Store: s, Bus: bus, Mail: mail, JWTSecret: secret, TokenTTL: ttl}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/session", h.session)
	return r
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	// Form-level checks mirror the store's own validation so the caller
	// gets a field name back.
	if field, reason := validateRegistration(in.Name, in.Email, in.Phone, in.Password); field != "" {
		response.WriteErrorWithDetails(w, http.StatusBadRequest,
			"validation failed", response.CodeValidation, field+": "+reason)
		return
	}

	user, err := h.Store.Register(r.Context(), in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	notif, err := h.Store.AddNotification(r.Context(), user.ID, domain.NotificationRequest{
		Title:   "Welcome to Veritas Logistics",
		Message: "Your account is ready. Book a shipment or request a quote to get started.",
		Type:    domain.NotifyWelcome,
	})
	if err != nil {
		logger.WarnContext(r.Context(), "welcome notification failed", "error", err)
	} else {
		publishNotification(r.Context(), h.Bus, user.ID, notif)
	}

	if err := h.Bus.Publish(r.Context(), events.UserRegistered, events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		logger.WarnContext(r.Context(), "publish user.registered failed", "error", err)
	}

	if _, err := h.Mail.Send(user.Email, user.Name,
		"Welcome to Veritas Logistics",
		fmt.Sprintf("Hi %s, your account is ready. Log in to book your first shipment.", user.Name),
		fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Log in to book your first shipment.</p>", user.Name),
	); err != nil {
		logger.WarnContext(r.Context(), "welcome mail failed", "error", err)
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful. Please log in.",
		"user":    user.Profile(),
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	session, err := h.Store.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := auth.NewAccessToken(session.UserID, session.Email, session.Name, h.JWTSecret, h.TokenTTL)
	if err != nil {
		response.InternalError(w, "could not issue token")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"session":      session,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Logout(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	session, err := h.Store.GetSession(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"logged_in": session != nil,
		"session":   session,
	})
}

func validateRegistration(name, email, phone, password string) (field, reason string) {
	switch {
	case name == "":
		return "name", "required"
	case email == "":
		return "email", "required"
	case phone == "":
		return "phone", "required"
	case password == "":
		return "password", "required"
	case !utils.IsValidEmail(email):
		return "email", "invalid format"
	case !utils.IsValidPhone(phone):
		return "phone", "invalid format"
	case len(password) < 6:
		return "password", "must be at least 6 characters"
	}
	return "", ""
}
