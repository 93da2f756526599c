package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/utils"
)

type deployRequest struct {
	ServerURL string `json:"serverUrl"`
}

type deployResponse struct {
	Success bool `json:"success"`
}

type checkConfigResponse struct {
	Usable bool `json:"usable"`
}

// deployAccount pushes the account's current bot configuration to the
// deployed bot process at the user-supplied server URL. The push is
// synchronous and best-effort: the real outcome is reported, no retry.
func (h *Handler) deployAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req deployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accountID := chi.URLParam(r, "id")
	if err := h.services.DeployService.Deploy(ctx, tenantKey, accountID, req.ServerURL); err != nil {
		log.Err(err).Str("account_id", accountID).Msg("config deploy failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, deployResponse{Success: true}, http.StatusOK)
}

// checkAccountConfig probes whether the account's configuration is usable
// against the AI provider before the owner deploys it.
func (h *Handler) checkAccountConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	accountID := chi.URLParam(r, "id")
	account, found := h.services.AccountService.Account(ctx, tenantKey, accountID)
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	if err := h.services.DeployService.CheckConfig(ctx, account.Config); err != nil {
		log.Err(err).Str("account_id", accountID).Msg("config check failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, checkConfigResponse{Usable: true}, http.StatusOK)
}
