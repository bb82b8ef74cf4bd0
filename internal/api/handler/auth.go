package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"time"

	"github.com/kahayonz/safeflight/internal/api/respond"
	"github.com/kahayonz/safeflight/internal/auth"
	"github.com/kahayonz/safeflight/internal/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type flightRequest struct {
	Date        string `json:"date"`
	Destination string `json:"destination"`
}

// Register creates a new account.
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "email and password"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid email address")
		return
	}
	if req.Password == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Password is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Registration failed")
		return
	}

	if _, err := h.accounts.Create(r.Context(), req.Email, hash); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respond.WriteError(w, http.StatusBadRequest, "EMAIL_IN_USE", "Email is already in use. Please log in.")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Registration failed")
		return
	}

	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
	})
}

// Login verifies credentials and issues a JWT.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}

	account, err := h.accounts.ByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusBadRequest, "NOT_REGISTERED", "User not found. Please sign up first.")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Login failed")
		return
	}
	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(account.ID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Login failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"token": token})
}

// Logout acknowledges a logout. Tokens are stateless; this exists for
// frontend compatibility.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

// SaveFlight replaces the authenticated account's flight details wholesale.
// @Summary Save flight details
// @Tags auth
// @Accept json
// @Produce json
// @Param body body flightRequest true "date (YYYY-MM-DD) and destination"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Security BearerAuth
// @Router /auth/save-flight [post]
func (h *Handler) SaveFlight(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
		return
	}

	var req flightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.Date == "" || req.Destination == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing date or destination")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Date must be YYYY-MM-DD")
		return
	}

	fd := store.FlightDetails{Date: req.Date, Destination: req.Destination}
	if err := h.accounts.SaveFlightDetails(r.Context(), accountID, fd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not save flight details")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"message":       "Flight details saved",
		"flightDetails": fd,
	})
}

// pathParam decodes a URL path segment, tolerating encoded spaces.
func pathParam(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
