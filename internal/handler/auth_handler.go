package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"adminconsole/internal/console"
	"adminconsole/internal/logger"
	"adminconsole/internal/models"
	"adminconsole/internal/session"
)

const notAdminMessage = "Invalid credentials or not an admin account."

type AuthResponse struct {
	User     UserResponse `json:"user"`
	Redirect string       `json:"redirect"`
}

type UserResponse struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	Fullname string      `json:"fullname"`
	Role     models.Role `json:"role"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Fullname: user.Fullname, Role: user.Role}
}

// LoginPage sends an operator who is already signed in to the dashboard.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.writeFrame(w, map[string]bool{"authenticated": false}, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var form console.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := form.Validate(); err != nil {
		writeFormError(w, err)
		return
	}

	resp, err := h.AuthService.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		logger.Zlog.Info("login rejected by auth service", zap.String("email", form.Email), zap.Error(err))
		writeFormError(w, err)
		return
	}

	if err := h.Sessions.Login(r.Context(), resp.User); err != nil {
		if errors.Is(err, session.ErrNotAdmin) {
			logger.Zlog.Warn("non-admin login attempt", zap.String("email", form.Email), zap.String("role", string(resp.User.Role)))
			writeJSON(w, FormErrorResponse{Error: notAdminMessage, FormError: notAdminMessage}, http.StatusForbidden)
			return
		}
		writeFormError(w, err)
		return
	}

	h.writeFrame(w, AuthResponse{User: newUserResponse(resp.User), Redirect: "/dashboard"}, http.StatusOK)
}

// Logout clears the local session even when the remote logout fails.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context()); err != nil {
		logger.Zlog.Warn("remote logout failed", zap.Error(err))
	}

	h.Console.CloseAll()
	if err := h.Sessions.Logout(r.Context()); err != nil {
		logger.Zlog.Error("failed to clear session", zap.Error(err))
		WriteError(w, "failed to clear session", http.StatusInternalServerError)
		return
	}

	h.writeFrame(w, map[string]string{"redirect": "/login"}, http.StatusOK)
}
