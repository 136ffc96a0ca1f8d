// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlnode

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser parses fragments with the x/net/html tree builder (HTML5 insertion modes,
// implied end tags, table foster parenting, lower-cased tag and attribute names).
type HTMLParser struct {
	// context element for the fragment, defaults to "body"
	Context string
}

func (p HTMLParser) contextNode() *html.Node {
	tag := strings.ToLower(p.Context)
	if tag == "" {
		tag = "body"
	}
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func (p HTMLParser) ParseFragment(htmlStr string) ([]Node, error) {
	// a fresh context node per call, the parsed nodes are never attached to it
	htmlNodes, err := html.ParseFragment(strings.NewReader(htmlStr), p.contextNode())
	if err != nil {
		return nil, fmt.Errorf("cannot parse html fragment: %w", err)
	}
	var rtn []Node
	for _, hn := range htmlNodes {
		node := convertHtmlNode(hn)
		if node == nil {
			continue
		}
		rtn = append(rtn, node)
	}
	return rtn, nil
}

func attrName(attr html.Attribute) string {
	if attr.Namespace == "" {
		return attr.Key
	}
	return attr.Namespace + ":" + attr.Key
}

func convertHtmlNode(hn *html.Node) Node {
	switch hn.Type {
	case html.TextNode:
		return &Text{Data: hn.Data}
	case html.CommentNode, html.DoctypeNode:
		return &Comment{Data: hn.Data}
	case html.ElementNode:
		elem := &Element{Tag: hn.Data, RawInner: renderInner(hn)}
		for _, attr := range hn.Attr {
			elem.Attrs = append(elem.Attrs, Attr{Name: attrName(attr), Value: attr.Val})
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			child := convertHtmlNode(c)
			if child == nil {
				continue
			}
			elem.Children = append(elem.Children, child)
		}
		return elem
	default:
		return nil
	}
}

// text inside these elements is serialized verbatim (same set html.Render uses)
var literalTextTags = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

func renderInner(hn *html.Node) func() string {
	return func() string {
		var buf bytes.Buffer
		literal := hn.Namespace == "" && literalTextTags[hn.Data]
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if literal && c.Type == html.TextNode {
				buf.WriteString(c.Data)
				continue
			}
			if err := html.Render(&buf, c); err != nil {
				break
			}
		}
		return buf.String()
	}
}
