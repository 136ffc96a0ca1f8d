// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlnode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wavetermdev/htmltoken"
)

// TokenParser builds the tree from a token stream with a simple element stack.
// It does not apply HTML5 insertion modes: tag/attribute case is preserved, stray end tags
// are ignored, an end tag closes any unclosed elements above its start tag, and
// JSON attribute values (data={...}) are accepted.
// Inner markup is the exact source text between an element's start and end tags.
type TokenParser struct{}

var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

type stackFrame struct {
	elem       *Element
	innerStart int
}

type tokenTreeBuilder struct {
	src   string
	root  []Node
	stack []stackFrame
}

func (b *tokenTreeBuilder) appendNode(node Node) {
	if len(b.stack) == 0 {
		b.root = append(b.root, node)
		return
	}
	parent := b.stack[len(b.stack)-1].elem
	parent.Children = append(parent.Children, node)
}

func (b *tokenTreeBuilder) pushElem(elem *Element, innerStart int) {
	b.appendNode(elem)
	b.stack = append(b.stack, stackFrame{elem: elem, innerStart: innerStart})
}

// closes the top n frames, innerEnd is where the closing markup starts
func (b *tokenTreeBuilder) popElems(n int, innerEnd int) {
	for ; n > 0 && len(b.stack) > 0; n-- {
		frame := b.stack[len(b.stack)-1]
		frame.elem.RawInner = StaticInner(b.src[frame.innerStart:innerEnd])
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// returns how many frames must be popped to close tag (0 if tag is not open)
func (b *tokenTreeBuilder) findOpen(tag string) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(b.stack[i].elem.Tag, tag) {
			return len(b.stack) - i
		}
	}
	return 0
}

func decodeAttrVal(attr htmltoken.Attribute) string {
	if !attr.IsJson {
		return attr.Val
	}
	var val any
	err := json.Unmarshal([]byte(attr.Val), &val)
	if err != nil {
		return attr.Val
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return attr.Val
}

func tokenToElem(token htmltoken.Token) *Element {
	elem := &Element{Tag: token.Data}
	for _, attr := range token.Attr {
		if attr.Key == "" {
			continue
		}
		elem.Attrs = append(elem.Attrs, Attr{Name: attr.Key, Value: decodeAttrVal(attr)})
	}
	return elem
}

func (TokenParser) ParseFragment(htmlStr string) ([]Node, error) {
	b := &tokenTreeBuilder{src: htmlStr}
	iter := htmltoken.NewTokenizer(strings.NewReader(htmlStr))
	pos := 0
	for {
		tokenType := iter.Next()
		// Raw must be read before Token (Token rewrites the buffer in place)
		tokStart := pos
		pos += len(iter.Raw())
		if pos > len(htmlStr) {
			pos = len(htmlStr)
		}
		switch tokenType {
		case htmltoken.StartTagToken:
			token := iter.Token()
			elem := tokenToElem(token)
			if voidTags[strings.ToLower(token.Data)] {
				elem.RawInner = StaticInner("")
				b.appendNode(elem)
				continue
			}
			b.pushElem(elem, pos)
		case htmltoken.SelfClosingTagToken:
			elem := tokenToElem(iter.Token())
			elem.RawInner = StaticInner("")
			b.appendNode(elem)
		case htmltoken.EndTagToken:
			token := iter.Token()
			numPop := b.findOpen(token.Data)
			if numPop == 0 {
				continue
			}
			b.popElems(numPop, tokStart)
		case htmltoken.TextToken:
			token := iter.Token()
			if token.Data == "" {
				continue
			}
			b.appendNode(&Text{Data: token.Data})
		case htmltoken.CommentToken, htmltoken.DoctypeToken:
			b.appendNode(&Comment{Data: iter.Token().Data})
		case htmltoken.ErrorToken:
			if iter.Err() != io.EOF {
				return nil, fmt.Errorf("cannot tokenize html fragment: %w", iter.Err())
			}
			b.popElems(len(b.stack), len(htmlStr))
			return b.root, nil
		}
	}
}
