// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wavetermdev/htmlvdom/pkg/hconfig"
	"github.com/wavetermdev/htmlvdom/pkg/util/utilfn"
)

const ConfigSchemaFileName = "schema/html2vdom.json"

func generateConfigSchema() error {
	jsonSchema, err := hconfig.GenerateSchema()
	if err != nil {
		return fmt.Errorf("failed to generate config schema: %v", err)
	}
	err = os.MkdirAll(filepath.Dir(ConfigSchemaFileName), 0755)
	if err != nil {
		return fmt.Errorf("failed to create schema dir: %v", err)
	}
	written, err := utilfn.WriteFileIfDifferent(ConfigSchemaFileName, jsonSchema)
	if !written {
		fmt.Fprintf(os.Stderr, "no changes to %s\n", ConfigSchemaFileName)
	}
	if err != nil {
		return fmt.Errorf("failed to write config schema: %v", err)
	}
	return nil
}

func main() {
	err := generateConfigSchema()
	if err != nil {
		log.Fatalf("config schema error: %v", err)
	}
}
