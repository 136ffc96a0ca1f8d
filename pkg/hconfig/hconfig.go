// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package hconfig is the html2vdom config file (JSON or YAML) and its mapping onto htmlvdom.Options.
package hconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/htmlvdom"
	"github.com/wavetermdev/htmlvdom/pkg/propinfo"
	"github.com/wavetermdev/htmlvdom/pkg/util/utilfn"
	"gopkg.in/yaml.v3"
)

const ConfigEnvName = "HTML2VDOM_CONFIG"

const (
	Parser_Html  = "html"
	Parser_Token = "token"
)

const (
	Format_Json = "json"
	Format_Yaml = "yaml"
)

type ConfigType struct {
	Parser                 string   `json:"parser,omitempty" jsonschema:"enum=html,enum=token"`
	PreserveAttributes     []string `json:"preserveattributes,omitempty"`
	DangerouslySetChildren []string `json:"dangerouslysetchildren,omitempty"`
	BooleanOverrides       []string `json:"booleanoverrides,omitempty"`
	StyleObjects           bool     `json:"styleobjects,omitempty"`
	MinifyStyle            bool     `json:"minifystyle,omitempty"`
	Compact                bool     `json:"compact,omitempty"`
}

func FormatFromFileName(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		return Format_Yaml
	default:
		return Format_Json
	}
}

func ParseConfig(barr []byte, format string) (*ConfigType, error) {
	var m map[string]any
	var err error
	switch format {
	case Format_Yaml:
		err = yaml.Unmarshal(barr, &m)
	case Format_Json:
		err = json.Unmarshal(barr, &m)
	default:
		return nil, fmt.Errorf("invalid config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s config: %w", format, err)
	}
	rtn := &ConfigType{}
	if len(m) == 0 {
		return rtn, nil
	}
	err = utilfn.DoMapStructure(rtn, m)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := rtn.Validate(); err != nil {
		return nil, err
	}
	return rtn, nil
}

func ReadConfigFile(fileName string) (*ConfigType, error) {
	barr, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	rtn, err := ParseConfig(barr, FormatFromFileName(fileName))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return rtn, nil
}

func (c *ConfigType) Validate() error {
	switch c.Parser {
	case "", Parser_Html, Parser_Token:
		return nil
	default:
		return fmt.Errorf("invalid parser %q (must be %q or %q)", c.Parser, Parser_Html, Parser_Token)
	}
}

func (c *ConfigType) MakeParser() htmlnode.Parser {
	if c.Parser == Parser_Token {
		return htmlnode.TokenParser{}
	}
	return htmlnode.HTMLParser{}
}

func (c *ConfigType) MakeOptions() *htmlvdom.Options {
	opts := &htmlvdom.Options{
		PreserveAttributes:     c.PreserveAttributes,
		DangerouslySetChildren: c.DangerouslySetChildren,
		Parser:                 c.MakeParser(),
		StyleObjects:           c.StyleObjects,
		MinifyStyle:            c.MinifyStyle,
	}
	if len(c.BooleanOverrides) > 0 {
		opts.Cache = propinfo.MakeCache(nil).WithBooleanOverrides(c.BooleanOverrides...)
	}
	return opts
}
