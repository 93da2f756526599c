package http

import (
	"errors"
	"net/http"

	"github.com/aleasistemi/botmanager/internal/adapter"
	"github.com/aleasistemi/botmanager/internal/service"
	"github.com/aleasistemi/botmanager/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccountLimitReached:     http.StatusConflict,
	service.ErrAccountNotFound:         http.StatusNotFound,

	adapter.ErrConfigNotReady:     http.StatusUnprocessableEntity,
	adapter.ErrConfigUnusable:     http.StatusBadGateway,
	adapter.ErrConfigPushFailed:   http.StatusBadGateway,
	adapter.ErrConfigPushRejected: http.StatusBadGateway,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrSessionNotFound:    http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
