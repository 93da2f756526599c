package http

import (
	"net/http"

	"github.com/aleasistemi/botmanager/internal/utils"
)

// syncState lists the tenant's mutation receipts so the dashboard can show
// a non-blocking "sync failed" indicator for optimistic changes the backing
// store has not confirmed.
func (h *Handler) syncState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantKey, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	receipts := h.services.AccountService.SyncState(ctx, tenantKey)
	utils.WriteJSON(w, receipts, http.StatusOK)
}
