package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aleasistemi/botmanager/models"
)

// HTTPClientConfig carries the settings of the outbound HTTP client used
// for config pushes.
type HTTPClientConfig struct {
	Timeout time.Duration
}

type httpBotServerAdapter struct {
	client *resty.Client
}

// NewHTTPBotServerAdapter constructs a [BotServerAdapter] that talks plain
// HTTP/JSON to deployed bot processes. Unlike most API clients there is no
// fixed base URL: every push targets the URL the account owner supplied.
func NewHTTPBotServerAdapter(cfg HTTPClientConfig) BotServerAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetTimeout(cfg.Timeout)

	return &httpBotServerAdapter{client: cli}
}

// configPushRequest is the wire form of a config push. Field names follow
// what the generated server templates expect.
type configPushRequest struct {
	SystemInstruction string  `json:"systemInstruction"`
	Temperature       float64 `json:"temperature"`
	APIKey            string  `json:"apiKey,omitempty"`
}

// configPushResponse is the minimal shape of the bot server's answer; only
// the success flag and an optional message are inspected.
type configPushResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *httpBotServerAdapter) PushConfig(ctx context.Context, baseURL string, config models.BotConfig) error {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/update-config"

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(configPushRequest{
			SystemInstruction: config.SystemInstruction,
			Temperature:       config.Temperature,
			APIKey:            config.APIKey,
		}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigPushFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var body configPushResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("%w: undecodable response body", ErrConfigPushRejected)
	}
	if !body.Success {
		message := strings.TrimSpace(body.Message)
		if message == "" {
			message = "no success flag in response"
		}
		return fmt.Errorf("%w: %s", ErrConfigPushRejected, message)
	}

	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrConfigPushFailed, resp.StatusCode(), body)
}
