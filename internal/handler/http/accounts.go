// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/utils"
	"github.com/aleasistemi/botmanager/models"
)

type createAccountRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accounts := h.services.AccountService.Accounts(ctx, tenantKey)
	utils.WriteJSON(w, accounts, http.StatusOK)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.AccountService.CreateAccount(ctx, tenantKey, req.Name, req.PhoneNumber)
	if err != nil {
		log.Err(err).Str("tenant", tenantKey).Msg("account creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var account models.BotAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// The identifier comes from the path; the body cannot reassign it.
	account.ID = chi.URLParam(r, "id")

	updated, err := h.services.AccountService.UpdateAccount(ctx, tenantKey, account)
	if err != nil {
		log.Err(err).Str("account_id", account.ID).Msg("account update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.services.AccountService.DeleteAccount(ctx, tenantKey, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) disconnectAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID := chi.URLParam(r, "id")
	account, err := h.services.AccountService.Disconnect(ctx, tenantKey, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("account disconnect failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// connectAccount is the provisioning callback: the deployed bot process
// reports that its WhatsApp link came up.
func (h *Handler) connectAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID := chi.URLParam(r, "id")
	account, err := h.services.AccountService.MarkConnected(ctx, tenantKey, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("account connect failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}
