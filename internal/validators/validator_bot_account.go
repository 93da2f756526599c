package validators

import (
	"context"
	"strings"

	"github.com/aleasistemi/botmanager/models"
)

const (
	FieldName         = "name"
	FieldTemperature  = "temperature"
	FieldStatus       = "status"
	FieldServerStatus = "server_status"
)

var allowedStatuses = []string{
	models.StatusDisconnected,
	models.StatusConnected,
}

var allowedServerStatuses = []string{
	models.ServerOffline,
	models.ServerOnline,
}

type BotAccountValidator struct {
}

func NewBotAccountValidator() Validator {
	return &BotAccountValidator{}
}

func (v *BotAccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BotAccount:
		return v.validateBotAccount(ctx, value, fields...)
	case *models.BotAccount:
		return v.validateBotAccount(ctx, *value, fields...)

	case models.BotConfig:
		return v.validateBotConfig(ctx, value)
	case *models.BotConfig:
		return v.validateBotConfig(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *BotAccountValidator) validateBotAccount(ctx context.Context, account models.BotAccount, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldTemperature, FieldStatus, FieldServerStatus}
	}

	for _, field := range fields {
		switch field {
		case FieldName:
			if strings.TrimSpace(account.Name) == "" {
				return ErrEmptyName
			}
		case FieldTemperature:
			if account.Config.Temperature < 0.0 || account.Config.Temperature > 1.0 {
				return ErrInvalidTemperature
			}
		case FieldStatus:
			if !contains(allowedStatuses, account.Status) {
				return ErrInvalidStatus
			}
		case FieldServerStatus:
			if !contains(allowedServerStatuses, account.ServerStatus) {
				return ErrInvalidServerStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BotAccountValidator) validateBotConfig(_ context.Context, cfg models.BotConfig) error {
	if cfg.Temperature < 0.0 || cfg.Temperature > 1.0 {
		return ErrInvalidTemperature
	}

	return nil
}

func contains(allowed []string, value string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}

	return false
}
