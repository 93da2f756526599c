package adapter

import "errors"

var (
	// ErrConfigPushFailed is the transport-level push failure: the deployed
	// bot could not be reached or answered with a non-success HTTP status.
	ErrConfigPushFailed = errors.New("config push failed")

	// ErrConfigPushRejected is returned when the deployed bot answered 2xx
	// but the JSON body carried no truthy success flag.
	ErrConfigPushRejected = errors.New("config push rejected by bot server")

	// ErrConfigNotReady is returned by the config prober when the
	// configuration has no API credential yet; no outbound call is made.
	ErrConfigNotReady = errors.New("config has no api key")

	// ErrConfigUnusable is returned when the AI provider rejected the
	// configuration (bad credential, unreachable model, etc.).
	ErrConfigUnusable = errors.New("config is not usable")
)
