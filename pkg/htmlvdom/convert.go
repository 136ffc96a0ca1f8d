// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package htmlvdom converts HTML strings into vdom elements, mapping html attribute names
// to the framework's prop names ("class" => "className", "tabindex" => "tabIndex",
// boolean attributes => bools) and keying every element by its position.
package htmlvdom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wavetermdev/htmlvdom/pkg/panichandler"
	"github.com/wavetermdev/htmlvdom/pkg/vdom"
)

var ErrNotString = errors.New("html input must be a string")

type TypeError struct {
	Type string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("html input must be a string, got %s", e.Type)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrNotString
}

// ConvertAll converts every top-level node of htmlStr (comments and nils are dropped).
// On success the result is never nil. A panic in a Transform func is returned as a *panichandler.PanicError.
func (c *Converter) ConvertAll(htmlStr string) (rtnParts []any, rtnErr error) {
	defer func() {
		panicErr := panichandler.PanicHandler("htmlvdom.ConvertAll", recover())
		if panicErr != nil {
			rtnParts = nil
			rtnErr = panicErr
		}
	}()
	rtn := make([]any, 0)
	htmlStr = strings.TrimSpace(htmlStr)
	if htmlStr == "" {
		return rtn, nil
	}
	nodes, err := c.parser.ParseFragment(htmlStr)
	if err != nil {
		return nil, err
	}
	for idx, node := range nodes {
		part := c.Transform(node, strconv.Itoa(idx))
		if isNilPart(part) {
			continue
		}
		rtn = append(rtn, part)
	}
	return rtn, nil
}

// Convert is ConvertAll, except that a single result is returned by itself instead of as a []any
func (c *Converter) Convert(htmlStr string) (any, error) {
	parts, err := c.ConvertAll(htmlStr)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts, nil
}

// ConvertValue is Convert for untyped input, non-strings return a *TypeError (errors.Is ErrNotString)
func (c *Converter) ConvertValue(input any) (any, error) {
	htmlStr, ok := input.(string)
	if !ok {
		return nil, &TypeError{Type: fmt.Sprintf("%T", input)}
	}
	return c.Convert(htmlStr)
}

func Convert(htmlStr string, opts *Options) (any, error) {
	return MakeConverter(opts).Convert(htmlStr)
}

func ConvertAll(htmlStr string, opts *Options) ([]any, error) {
	return MakeConverter(opts).ConvertAll(htmlStr)
}

func ConvertValue(input any, opts *Options) (any, error) {
	return MakeConverter(opts).ConvertValue(input)
}

// ToElems flattens a conversion result into vdom elems (strings become #text elems)
func ToElems(result any) []vdom.VDomElem {
	return vdom.PartToElems(result)
}
