// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package propinfo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// domprops.json is a snapshot of a reference browser: for each tag, the enumerable properties
// of document.createElement(tag) that are not on HTMLElement ("global" holds the HTMLElement ones),
// and which of them read back as `true` after setAttribute(name, "").

//go:embed domprops.json
var domPropsJson []byte

type tagPropsType struct {
	Props []string `json:"props"`
	Bool  []string `json:"bool,omitempty"`
}

type domPropsType struct {
	Global tagPropsType            `json:"global"`
	Tags   map[string]tagPropsType `json:"tags"`
}

// StaticProber answers probes from a precomputed property table instead of live elements.
// Unknown tags only have the global properties (like an HTMLUnknownElement).
type StaticProber struct {
	global    tagPropsType
	tags      map[string]tagPropsType
	boolCache map[string]map[string]bool // tag -> lower-cased prop -> true
}

func ParseStaticProber(barr []byte) (*StaticProber, error) {
	var domProps domPropsType
	err := json.Unmarshal(barr, &domProps)
	if err != nil {
		return nil, fmt.Errorf("cannot parse dom property table: %w", err)
	}
	rtn := &StaticProber{
		global:    domProps.Global,
		tags:      domProps.Tags,
		boolCache: make(map[string]map[string]bool),
	}
	if rtn.tags == nil {
		rtn.tags = make(map[string]tagPropsType)
	}
	rtn.boolCache[""] = lowerSet(domProps.Global.Bool)
	for tag, tagProps := range rtn.tags {
		rtn.boolCache[tag] = lowerSet(tagProps.Bool)
	}
	return rtn, nil
}

// MakeStaticProber returns a prober over the embedded table (panics if the embedded table is corrupt)
func MakeStaticProber() *StaticProber {
	rtn, err := ParseStaticProber(domPropsJson)
	if err != nil {
		panic(err)
	}
	return rtn
}

func lowerSet(names []string) map[string]bool {
	rtn := make(map[string]bool, len(names))
	for _, name := range names {
		rtn[strings.ToLower(name)] = true
	}
	return rtn
}

func (sp *StaticProber) PropNames(tag string) []string {
	tagProps := sp.tags[tag]
	rtn := make([]string, 0, len(sp.global.Props)+len(tagProps.Props))
	rtn = append(rtn, sp.global.Props...)
	rtn = append(rtn, tagProps.Props...)
	return rtn
}

// setAttribute is case-insensitive for html elements, so the probe is too
func (sp *StaticProber) ProbeBoolean(tag string, name string) bool {
	lname := strings.ToLower(name)
	if sp.boolCache[""][lname] {
		return true
	}
	return sp.boolCache[tag][lname]
}

func (sp *StaticProber) KnownTag(tag string) bool {
	_, ok := sp.tags[tag]
	return ok
}
