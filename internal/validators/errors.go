package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName           = errors.New("name is required")
	ErrInvalidTemperature  = errors.New("temperature must be between 0.0 and 1.0")
	ErrInvalidStatus       = errors.New("invalid connection status")
	ErrInvalidServerStatus = errors.New("invalid server status")
)
