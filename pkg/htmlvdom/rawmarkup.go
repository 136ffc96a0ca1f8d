// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlvdom

import (
	"log"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"golang.org/x/net/html"
)

const cssMimeType = "text/css"

var (
	cssMinifier     *minify.M
	cssMinifierOnce sync.Once
)

func getCssMinifier() *minify.M {
	cssMinifierOnce.Do(func() {
		cssMinifier = minify.New()
		cssMinifier.AddFunc(cssMimeType, css.Minify)
	})
	return cssMinifier
}

// on error the css is returned unchanged
func minifyCss(cssText string) string {
	minified, err := getCssMinifier().String(cssMimeType, cssText)
	if err != nil {
		log.Printf("[htmlvdom] cannot minify style: %v\n", err)
		return cssText
	}
	return minified
}

func isRawTextTag(tag string) bool {
	return tag == "style" || tag == "script"
}

// escapeTextQuotes escapes the double quotes in the text content of markup as &quot;
// (quotes delimiting attribute values are left alone, as is the text of nested style/script elements)
func escapeTextQuotes(markup string) string {
	if !strings.Contains(markup, `"`) && !strings.Contains(markup, "&#34;") {
		return markup
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	var sb strings.Builder
	inRawText := false
	for {
		tokenType := z.Next()
		if tokenType == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		switch tokenType {
		case html.StartTagToken:
			tagName, _ := z.TagName()
			inRawText = isRawTextTag(string(tagName))
		case html.TextToken:
			if !inRawText {
				raw = strings.ReplaceAll(raw, "&#34;", "&quot;")
				raw = strings.ReplaceAll(raw, `"`, "&quot;")
			}
		default:
			inRawText = false
		}
		sb.WriteString(raw)
	}
	return sb.String()
}

// returns the markup to inject for elem, false if it has no inner markup
func (c *Converter) rawMarkup(tag string, elem *htmlnode.Element) (string, bool) {
	inner := elem.InnerHTML()
	if inner == "" {
		return "", false
	}
	if !isRawTextTag(tag) {
		inner = escapeTextQuotes(inner)
	}
	inner = strings.TrimSpace(inner)
	if tag == "style" && c.minifyStyle {
		inner = minifyCss(inner)
	}
	return inner, true
}
