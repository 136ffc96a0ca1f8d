// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package hconfig

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

func GenerateSchema() ([]byte, error) {
	configSchema := jsonschema.Reflect(&ConfigType{})
	barr, err := json.MarshalIndent(configSchema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal config schema: %w", err)
	}
	return barr, nil
}
