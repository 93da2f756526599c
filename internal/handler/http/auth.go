// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/utils"
	"github.com/aleasistemi/botmanager/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type currentUserResponse struct {
	User *models.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.SessionService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user registration failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, sessionResponse{User: user, Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, token, err := h.services.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user login failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Str("id", user.ID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, sessionResponse{User: user, Token: token.SignedString}, http.StatusOK)
}

// currentUser resolves the user behind the bearer token. A missing,
// malformed, expired or revoked token answers 200 with a null user rather
// than an error, so a fresh browser session can probe for a restorable
// session without tripping error handling.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, err := tokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		utils.WriteJSON(w, currentUserResponse{User: nil}, http.StatusOK)
		return
	}

	user, ok := h.services.SessionService.CurrentUser(ctx, tokenString)
	if !ok {
		utils.WriteJSON(w, currentUserResponse{User: nil}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, currentUserResponse{User: &user}, http.StatusOK)
}

// logout revokes the session behind the bearer token. Always answers 204;
// an absent or malformed token means there is nothing to revoke.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if tokenString, err := tokenFromAuthHeader(r.Header.Get("Authorization")); err == nil {
		h.services.SessionService.Logout(ctx, tokenString)
	}

	w.WriteHeader(http.StatusNoContent)
}
