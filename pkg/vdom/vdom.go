// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"
	"reflect"
	"strings"
)

// ReactNode types = nil | string | Elem

func (e *VDomElem) Key() string {
	keyVal, ok := e.Props[KeyPropKey]
	if !ok {
		return ""
	}
	keyStr, ok := keyVal.(string)
	if ok {
		return keyStr
	}
	return ""
}

func (e *VDomElem) WithKey(key string) *VDomElem {
	if e == nil {
		return nil
	}
	if e.Props == nil {
		e.Props = make(map[string]any)
	}
	e.Props[KeyPropKey] = key
	return e
}

// returns the raw markup set through dangerouslySetInnerHTML (if any)
func (e *VDomElem) RawHTML() (string, bool) {
	if e == nil {
		return "", false
	}
	raw, ok := e.Props[RawHTMLPropKey].(*RawHTML)
	if !ok || raw == nil {
		return "", false
	}
	return raw.Html, true
}

func (e *VDomElem) IsText() bool {
	return e != nil && e.Tag == TextTag
}

func TextElem(text string) VDomElem {
	return VDomElem{Tag: TextTag, Text: text}
}

func Classes(classes ...any) string {
	var parts []string
	for _, class := range classes {
		switch c := class.(type) {
		case nil:
			continue
		case string:
			if c != "" {
				parts = append(parts, c)
			}
		}
		// Ignore any other types
	}
	return strings.Join(parts, " ")
}

// H is the standard element constructor (createElement).
// children can be strings, VDomElems, *VDomElems, or slices of those (nils are skipped)
func H(tag string, props map[string]any, children ...any) *VDomElem {
	rtn := &VDomElem{Tag: tag, Props: props}
	if len(children) > 0 {
		for _, part := range children {
			elems := PartToElems(part)
			rtn.Children = append(rtn.Children, elems...)
		}
	}
	return rtn
}

func If(cond bool, part any) any {
	if cond {
		return part
	}
	return nil
}

func IfElse(cond bool, part any, elsePart any) any {
	if cond {
		return part
	}
	return elsePart
}

func PartToElems(part any) []VDomElem {
	if part == nil {
		return nil
	}
	switch partTyped := part.(type) {
	case string:
		return []VDomElem{TextElem(partTyped)}
	case bool:
		// matches react
		if partTyped {
			return []VDomElem{TextElem("true")}
		}
		return nil
	case VDomElem:
		return []VDomElem{partTyped}
	case *VDomElem:
		if partTyped == nil {
			return nil
		}
		return []VDomElem{*partTyped}
	default:
		partVal := reflect.ValueOf(part)
		if partVal.Kind() == reflect.Slice {
			var rtn []VDomElem
			for i := 0; i < partVal.Len(); i++ {
				rtn = append(rtn, PartToElems(partVal.Index(i).Interface())...)
			}
			return rtn
		}
		return []VDomElem{TextElem(fmt.Sprint(part))}
	}
}

// TextContent concatenates the text of all descendant #text elems
func (e *VDomElem) TextContent() string {
	if e == nil {
		return ""
	}
	if e.Tag == TextTag {
		return e.Text
	}
	var sb strings.Builder
	for i := range e.Children {
		sb.WriteString(e.Children[i].TextContent())
	}
	return sb.String()
}
