// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

const TextTag = "#text"
const FragmentTag = "#fragment"

const KeyPropKey = "key"
const StylePropKey = "style"
const ClassNamePropKey = "className"
const RawHTMLPropKey = "dangerouslySetInnerHTML"

// vdom element
type VDomElem struct {
	Tag      string         `json:"tag"`
	Props    map[string]any `json:"props,omitempty"`
	Children []VDomElem     `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// used in props (dangerouslySetInnerHTML), markup is injected as-is by the renderer
type RawHTML struct {
	Html string `json:"__html"`
}
