// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package cssparser parses inline style attributes ("color: red; margin-top: 5px")
// into declaration maps, and converts them into React style objects.
package cssparser

import (
	"fmt"
	"strings"
	"unicode"
)

type Parser struct {
	Input      string
	Pos        int
	inQuote    bool
	quoteChar  byte
	parenStack []int
}

func MakeParser(input string) *Parser {
	return &Parser{Input: input}
}

// Parse returns property -> value (values are trimmed, quotes and parens are kept intact)
func (p *Parser) Parse() (map[string]string, error) {
	result := make(map[string]string)
	lastProp := ""
	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		propName, err := p.parsePropName(lastProp)
		if err != nil {
			return nil, err
		}
		lastProp = propName
		value, err := p.parseValue(propName)
		if err != nil {
			return nil, err
		}
		result[propName] = value
		p.skipWhitespace()
		if !p.consume(';') {
			break
		}
	}
	p.skipWhitespace()
	if !p.eof() {
		return nil, fmt.Errorf("bad style attribute, unexpected character %q at pos %d", string(p.Input[p.Pos]), p.Pos+1)
	}
	return result, nil
}

func (p *Parser) parsePropName(lastProp string) (string, error) {
	start := p.Pos
	for !p.eof() && isPropNameChar(p.peek()) {
		p.Pos++
	}
	propName := p.Input[start:p.Pos]
	p.skipWhitespace()
	if propName == "" {
		return "", fmt.Errorf("bad style attribute, invalid property name after %q, at pos %d", lastProp, p.Pos+1)
	}
	if p.eof() {
		return "", fmt.Errorf("bad style attribute, expected ':' after property %q, got EOF", propName)
	}
	if !p.consume(':') {
		return "", fmt.Errorf("bad style attribute, expected ':' after property %q, got %q, at pos %d", propName, string(p.Input[p.Pos]), p.Pos+1)
	}
	return propName, nil
}

// reads up to the next top-level ';' (semicolons inside quotes or parens are part of the value)
func (p *Parser) parseValue(propName string) (string, error) {
	start := p.Pos
	quotePos := 0
	p.parenStack = p.parenStack[:0]
	for ; !p.eof(); p.Pos++ {
		c := p.peek()
		if p.inQuote {
			if c == '\\' {
				p.Pos++
			} else if c == p.quoteChar {
				p.inQuote = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			p.inQuote = true
			p.quoteChar = c
			quotePos = p.Pos
		case '(':
			p.parenStack = append(p.parenStack, p.Pos)
		case ')':
			if len(p.parenStack) == 0 {
				return "", fmt.Errorf("bad style attribute, unmatched ')' at pos %d", p.Pos+1)
			}
			p.parenStack = p.parenStack[:len(p.parenStack)-1]
		}
		if c == ';' && len(p.parenStack) == 0 {
			break
		}
	}
	if p.inQuote {
		return "", fmt.Errorf("bad style attribute, while parsing property %q, unmatched quote at pos %d", propName, quotePos+1)
	}
	if len(p.parenStack) > 0 {
		return "", fmt.Errorf("bad style attribute, while parsing property %q, unmatched '(' at pos %d", propName, p.parenStack[len(p.parenStack)-1]+1)
	}
	end := p.Pos
	if end > len(p.Input) {
		end = len(p.Input)
	}
	return strings.TrimSpace(p.Input[start:end]), nil
}

func isPropNameChar(c byte) bool {
	return c == '-' || c == '_' || (c < unicode.MaxASCII && (unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))))
}

func (p *Parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.Pos++
	}
}

func (p *Parser) consume(expected byte) bool {
	if !p.eof() && p.peek() == expected {
		p.Pos++
		return true
	}
	return false
}

func (p *Parser) peek() byte {
	return p.Input[p.Pos]
}

func (p *Parser) eof() bool {
	return p.Pos >= len(p.Input)
}

func capitalizeAscii(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ToReactName converts a css property name to its React style key.
// "margin-top" => "marginTop", "-webkit-transition" => "WebkitTransition",
// "-ms-transition" => "msTransition", custom properties ("--main-color") are unchanged.
func ToReactName(input string) string {
	if strings.HasPrefix(input, "--") {
		return input
	}
	parts := strings.Split(strings.ToLower(input), "-")
	var sb strings.Builder
	idx := 1
	if parts[0] == "" && len(parts) > 1 {
		// vendor prefix
		if parts[1] == "ms" {
			sb.WriteString("ms")
		} else {
			sb.WriteString(capitalizeAscii(parts[1]))
		}
		idx = 2
	} else {
		sb.WriteString(parts[0])
	}
	for ; idx < len(parts); idx++ {
		sb.WriteString(capitalizeAscii(parts[idx]))
	}
	return sb.String()
}

// ParseReactStyle parses a style attribute into a React style object (nil for an empty style)
func ParseReactStyle(styleText string) (map[string]any, error) {
	m, err := MakeParser(styleText).Parse()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	rtn := make(map[string]any, len(m))
	for key, val := range m {
		rtn[ToReactName(key)] = val
	}
	return rtn, nil
}
