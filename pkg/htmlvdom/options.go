// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlvdom

import (
	"strings"

	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/propinfo"
)

// constructs the element for one tag (replaces vdom.H for that tag)
type ElemFunc func(props map[string]any, children []any) any

// constructs elements for tags without an ElemFunc
type DefaultElemFunc func(tag string, props map[string]any, children []any) any

// converts text node content, the result is used as the child
type TextFunc func(text string) any

type Transform struct {
	Elems   map[string]ElemFunc // keyed by lower-cased tag name
	Default DefaultElemFunc
	Text    TextFunc
}

type Options struct {
	Transform Transform

	// attribute names copied through without renaming or boolean coercion
	PreserveAttributes []string

	// tags whose inner markup is passed as dangerouslySetInnerHTML instead of children.
	// nil means DefaultDangerouslySetChildren, an empty non-nil slice disables passthrough.
	DangerouslySetChildren []string

	Parser htmlnode.Parser // defaults to htmlnode.HTMLParser{}
	Cache  *propinfo.Cache // defaults to propinfo.Default()

	// convert string style props into React style objects
	StyleObjects bool

	// minify the css passed through for <style>
	MinifyStyle bool
}

var DefaultDangerouslySetChildren = []string{"style"}

func makeSet(names []string, lower bool) map[string]bool {
	rtn := make(map[string]bool, len(names))
	for _, name := range names {
		if lower {
			name = strings.ToLower(name)
		}
		rtn[name] = true
	}
	return rtn
}
