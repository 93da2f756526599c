// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

// Package adapter provides transport-layer abstractions for the external
// collaborators of the dashboard core: the deployed bot processes that
// accept configuration pushes over HTTP, and the AI provider used to probe
// whether a configuration is usable.
//
// The primary abstraction is [BotServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPBotServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConfigPushRejected] for a 2xx response whose
// body lacks a truthy success flag).
package adapter

import (
	"context"

	"github.com/aleasistemi/botmanager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// BotServerAdapter pushes configuration to a deployed bot process. The push
// is best-effort: any transport failure, non-success HTTP status, or a
// response body without a truthy success flag surfaces as an error, and no
// retry is attempted at this layer.
type BotServerAdapter interface {
	// PushConfig POSTs the config to {baseURL}/api/update-config. baseURL
	// is user-supplied per account; trailing slashes are tolerated.
	PushConfig(ctx context.Context, baseURL string, config models.BotConfig) error
}

// ConfigProber reports whether a bot configuration is usable against the AI
// provider. An empty credential short-circuits to [ErrConfigNotReady]
// without any outbound call.
type ConfigProber interface {
	CheckConfig(ctx context.Context, config models.BotConfig) error
}
