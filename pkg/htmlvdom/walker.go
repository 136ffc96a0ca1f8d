// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlvdom

import (
	"log"
	"strconv"
	"strings"

	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/propinfo"
	"github.com/wavetermdev/htmlvdom/pkg/vdom"
	"github.com/wavetermdev/htmlvdom/pkg/vdom/cssparser"
)

// whitespace-only text directly inside these is dropped (browsers do not render it either)
var tabularTags = map[string]bool{
	"table": true,
	"tbody": true,
	"thead": true,
	"tfoot": true,
	"tr":    true,
}

// Converter holds resolved Options, it is immutable and safe for concurrent use
type Converter struct {
	parser       htmlnode.Parser
	cache        *propinfo.Cache
	preserve     map[string]bool
	rawTags      map[string]bool
	elemFns      map[string]ElemFunc
	defaultFn    DefaultElemFunc
	textFn       TextFunc
	styleObjects bool
	minifyStyle  bool
}

func MakeConverter(opts *Options) *Converter {
	if opts == nil {
		opts = &Options{}
	}
	rtn := &Converter{
		parser:       opts.Parser,
		cache:        opts.Cache,
		preserve:     makeSet(opts.PreserveAttributes, false),
		elemFns:      make(map[string]ElemFunc, len(opts.Transform.Elems)),
		defaultFn:    opts.Transform.Default,
		textFn:       opts.Transform.Text,
		styleObjects: opts.StyleObjects,
		minifyStyle:  opts.MinifyStyle,
	}
	if rtn.parser == nil {
		rtn.parser = htmlnode.HTMLParser{}
	}
	if rtn.cache == nil {
		rtn.cache = propinfo.Default()
	}
	rawTags := opts.DangerouslySetChildren
	if rawTags == nil {
		rawTags = DefaultDangerouslySetChildren
	}
	rtn.rawTags = makeSet(rawTags, true)
	for tag, fn := range opts.Transform.Elems {
		if fn == nil {
			continue
		}
		rtn.elemFns[strings.ToLower(tag)] = fn
	}
	return rtn
}

func isNilPart(part any) bool {
	if part == nil {
		return true
	}
	elem, ok := part.(*vdom.VDomElem)
	return ok && elem == nil
}

func childKeyPath(keyPath string, idx int) string {
	return keyPath + "." + strconv.Itoa(idx)
}

// Transform converts one parsed node into a vdom part: nil (dropped), a string (text),
// or an element (whatever the constructor for its tag returns)
func (c *Converter) Transform(node htmlnode.Node, keyPath string) any {
	switch n := node.(type) {
	case *htmlnode.Comment:
		return nil
	case *htmlnode.Text:
		if c.textFn != nil {
			return c.textFn(n.Data)
		}
		return n.Data
	case *htmlnode.Element:
		return c.transformElem(n, keyPath)
	default:
		return nil
	}
}

func (c *Converter) transformElem(elem *htmlnode.Element, keyPath string) any {
	rawAttrs := make([]htmlnode.Attr, 0, len(elem.Attrs)+1)
	rawAttrs = append(rawAttrs, elem.Attrs...)
	rawAttrs = append(rawAttrs, htmlnode.Attr{Name: vdom.KeyPropKey, Value: keyPath})
	tag := strings.ToLower(elem.Tag)
	props := MapAttributes(c.cache, tag, rawAttrs, c.preserve)
	if c.styleObjects && !c.preserve[vdom.StylePropKey] {
		fixStyleProp(props, keyPath)
	}
	if c.rawTags[tag] {
		if inner, ok := c.rawMarkup(tag, elem); ok {
			props[vdom.RawHTMLPropKey] = &vdom.RawHTML{Html: inner}
			return c.construct(tag, props, nil)
		}
	}
	isTabular := tabularTags[tag]
	var children []any
	for idx, child := range elem.Children {
		if text, ok := child.(*htmlnode.Text); ok && isTabular && strings.TrimSpace(text.Data) == "" {
			continue
		}
		part := c.Transform(child, childKeyPath(keyPath, idx))
		if isNilPart(part) {
			continue
		}
		children = append(children, part)
	}
	return c.construct(tag, props, children)
}

func (c *Converter) construct(tag string, props map[string]any, children []any) any {
	if len(children) == 0 {
		children = nil
	}
	if fn := c.elemFns[tag]; fn != nil {
		return fn(props, children)
	}
	if c.defaultFn != nil {
		return c.defaultFn(tag, props, children)
	}
	return vdom.H(tag, props, children...)
}

// a bad style attribute is left as a string
func fixStyleProp(props map[string]any, keyPath string) {
	styleText, ok := props[vdom.StylePropKey].(string)
	if !ok {
		return
	}
	styleObj, err := cssparser.ParseReactStyle(styleText)
	if err != nil {
		log.Printf("[htmlvdom] %v (at key %s)\n", err, keyPath)
		return
	}
	if styleObj == nil {
		delete(props, vdom.StylePropKey)
		return
	}
	props[vdom.StylePropKey] = styleObj
}
