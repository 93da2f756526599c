package adapter

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aleasistemi/botmanager/models"
)

// geminiModel is the model the dashboard's generated bot templates run
// against; the probe validates configs against the same one.
const geminiModel = "gemini-2.5-flash"

type geminiProber struct {
}

// NewGeminiProber constructs a [ConfigProber] that validates a BotConfig by
// opening a client session against the Gemini API with the account's
// credential, system instruction, and temperature. The probe only answers
// "is this configuration usable"; the actual chat pipeline runs in the
// deployed bot process, never here.
func NewGeminiProber() ConfigProber {
	return &geminiProber{}
}

func (p *geminiProber) CheckConfig(ctx context.Context, config models.BotConfig) error {
	if config.APIKey == "" {
		return ErrConfigNotReady
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnusable, err)
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModel)
	temperature := float32(config.Temperature)
	model.Temperature = &temperature
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(config.SystemInstruction)},
	}

	// a minimal one-token exchange proves the credential and model work
	if _, err = model.GenerateContent(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnusable, err)
	}

	return nil
}
