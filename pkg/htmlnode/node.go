// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package htmlnode is the parsed-HTML tree consumed by htmlvdom.
// A Parser turns an HTML fragment into top-level Nodes; two parsers are provided:
// HTMLParser (full HTML5 tree construction) and TokenParser (a tolerant tokenizer + element stack).
package htmlnode

type NodeType int

const (
	CommentNode NodeType = iota
	TextNode
	ElementNode
)

func (t NodeType) String() string {
	switch t {
	case CommentNode:
		return "comment"
	case TextNode:
		return "text"
	case ElementNode:
		return "element"
	default:
		return "unknown"
	}
}

type Node interface {
	Type() NodeType
}

type Parser interface {
	ParseFragment(htmlStr string) ([]Node, error)
}

type Comment struct {
	Data string
}

type Text struct {
	Data string
}

type Attr struct {
	Name  string
	Value string
}

type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node

	// serializes the inner markup on demand
	RawInner func() string
}

func (*Comment) Type() NodeType { return CommentNode }
func (*Text) Type() NodeType    { return TextNode }
func (*Element) Type() NodeType { return ElementNode }

func (e *Element) InnerHTML() string {
	if e == nil || e.RawInner == nil {
		return ""
	}
	return e.RawInner()
}

func (e *Element) GetAttr(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

func StaticInner(inner string) func() string {
	return func() string { return inner }
}
