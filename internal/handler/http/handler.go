package http

import (
	"github.com/aleasistemi/botmanager/internal/logger"
	"github.com/aleasistemi/botmanager/internal/service"
)

// Handler holds the service layer and the base logger the route handlers
// and middleware hang off of. Construct it with NewHandler and wire the
// routes with Init.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}
