// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables via caarlos0/env, following
// the `env` and `envPrefix` tags declared on [StructuredConfig]. A variable
// that cannot be converted to its field type surfaces as a wrapped error;
// absent variables simply leave the field zero for a later source to fill.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
