// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlvdom

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/panichandler"
	"github.com/wavetermdev/htmlvdom/pkg/vdom"
)

func mustConvert(t *testing.T, htmlStr string, opts *Options) any {
	t.Helper()
	rtn, err := Convert(htmlStr, opts)
	if err != nil {
		t.Fatalf("Convert(%q) error: %v", htmlStr, err)
	}
	return rtn
}

func mustElem(t *testing.T, result any) *vdom.VDomElem {
	t.Helper()
	elem, ok := result.(*vdom.VDomElem)
	if !ok {
		t.Fatalf("expected *vdom.VDomElem, got %T", result)
	}
	return elem
}

func text(s string) vdom.VDomElem {
	return vdom.TextElem(s)
}

func TestConvertNonString(t *testing.T) {
	for _, input := range []any{5, nil, []byte("<p>hi</p>"), true, map[string]any{}} {
		_, err := ConvertValue(input, nil)
		if err == nil {
			t.Fatalf("expected error for %T", input)
		}
		if !errors.Is(err, ErrNotString) {
			t.Fatalf("expected ErrNotString for %T, got %v", input, err)
		}
		var typeErr *TypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("expected *TypeError, got %T", err)
		}
	}
	rtn, err := ConvertValue("<p>hi</p>", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustElem(t, rtn)
}

func TestConvertCommentsOnly(t *testing.T) {
	for _, input := range []string{"<!-- a -->", "<!-- a --><!-- b -->", "  <!-- a -->\n  ", "", "   \n "} {
		rtn := mustConvert(t, input, nil)
		parts, ok := rtn.([]any)
		if !ok {
			t.Fatalf("expected []any for %q, got %T", input, rtn)
		}
		if len(parts) != 0 {
			t.Fatalf("expected empty result for %q, got %v", input, parts)
		}
	}
}

func TestSingleRootCollapse(t *testing.T) {
	elem := mustElem(t, mustConvert(t, "<p>hi</p>", nil))
	expected := &vdom.VDomElem{Tag: "p", Props: map[string]any{"key": "0"}, Children: []vdom.VDomElem{text("hi")}}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("single root (-want +got):\n%s", diff)
	}
	parts, ok := mustConvert(t, "<p>a</p><p>b</p>", nil).([]any)
	if !ok || len(parts) != 2 {
		t.Fatalf("expected two parts, got %#v", parts)
	}
	if mustElem(t, parts[1]).Key() != "1" {
		t.Fatalf("second key: %q", mustElem(t, parts[1]).Key())
	}
	parts, ok = mustConvert(t, "a<b>x</b>", nil).([]any)
	if !ok || len(parts) != 2 || parts[0] != "a" {
		t.Fatalf("expected text + elem, got %#v", parts)
	}
	if mustElem(t, parts[1]).Key() != "1" {
		t.Fatalf("elem key: %q", mustElem(t, parts[1]).Key())
	}
	if rtn := mustConvert(t, "just text", nil); rtn != "just text" {
		t.Fatalf("expected bare text, got %#v", rtn)
	}
}

func TestSpecialAttributes(t *testing.T) {
	elem := mustElem(t, mustConvert(t, `<div class="a b"><label for="x">L</label><img srcset="a 1x"></div>`, nil))
	expected := &vdom.VDomElem{
		Tag:   "div",
		Props: map[string]any{"className": "a b", "key": "0"},
		Children: []vdom.VDomElem{
			{Tag: "label", Props: map[string]any{"htmlFor": "x", "key": "0.0"}, Children: []vdom.VDomElem{text("L")}},
			{Tag: "img", Props: map[string]any{"srcSet": "a 1x", "key": "0.1"}},
		},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("special attrs (-want +got):\n%s", diff)
	}
}

func TestBooleanCoercion(t *testing.T) {
	elem := mustElem(t, mustConvert(t, `<input disabled checked="false" readonly="" value="v" tabindex="2" autofocus="no">`, nil))
	expected := map[string]any{
		"disabled":  true,
		"checked":   false,
		"readOnly":  true,
		"value":     "v",
		"tabIndex":  "2",
		"autofocus": true,
		"key":       "0",
	}
	if diff := cmp.Diff(expected, elem.Props); diff != "" {
		t.Fatalf("boolean props (-want +got):\n%s", diff)
	}
	if _, ok := elem.Props["required"]; ok {
		t.Fatalf("absent attribute must not appear in props")
	}
	elem = mustElem(t, mustConvert(t, `<video autoplay="false" muted controls></video>`, nil))
	expected = map[string]any{"autoPlay": false, "muted": true, "controls": true, "key": "0"}
	if diff := cmp.Diff(expected, elem.Props); diff != "" {
		t.Fatalf("video props (-want +got):\n%s", diff)
	}
}

func TestPreserveAttributes(t *testing.T) {
	opts := &Options{PreserveAttributes: []string{"class", "tabindex", "disabled"}}
	for _, tag := range []string{"div", "input", "button", "my-widget"} {
		htmlStr := "<" + tag + ` class="a" tabindex="1" disabled="false" data-x="y"></` + tag + ">"
		if tag == "input" {
			htmlStr = `<input class="a" tabindex="1" disabled="false" data-x="y">`
		}
		elem := mustElem(t, mustConvert(t, htmlStr, opts))
		expected := map[string]any{"class": "a", "tabindex": "1", "disabled": "false", "data-x": "y", "key": "0"}
		if diff := cmp.Diff(expected, elem.Props); diff != "" {
			t.Fatalf("preserved props for %s (-want +got):\n%s", tag, diff)
		}
	}
}

func TestTableWhitespace(t *testing.T) {
	elem := mustElem(t, mustConvert(t, "<table>\n<tbody><tr><td> x </td></tr></tbody>\n</table>", nil))
	expected := &vdom.VDomElem{
		Tag:   "table",
		Props: map[string]any{"key": "0"},
		Children: []vdom.VDomElem{{
			Tag:   "tbody",
			Props: map[string]any{"key": "0.1"},
			Children: []vdom.VDomElem{{
				Tag:   "tr",
				Props: map[string]any{"key": "0.1.0"},
				Children: []vdom.VDomElem{{
					Tag:      "td",
					Props:    map[string]any{"key": "0.1.0.0"},
					Children: []vdom.VDomElem{text(" x ")},
				}},
			}},
		}},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("table (-want +got):\n%s", diff)
	}
	// whitespace outside of tabular containers is kept
	elem = mustElem(t, mustConvert(t, "<div>\n<span>a</span> </div>", nil))
	if len(elem.Children) != 3 || elem.Children[0].Text != "\n" || elem.Children[2].Text != " " {
		t.Fatalf("div children: %#v", elem.Children)
	}
}

func TestStylePassthrough(t *testing.T) {
	elem := mustElem(t, mustConvert(t, `<style>.a{content:"q"}</style>`, nil))
	expected := &vdom.VDomElem{
		Tag: "style",
		Props: map[string]any{
			"key":               "0",
			vdom.RawHTMLPropKey: &vdom.RawHTML{Html: `.a{content:"q"}`},
		},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("style (-want +got):\n%s", diff)
	}
}

func TestCustomPassthroughEscapesQuotes(t *testing.T) {
	htmlStr := `<div title="say &quot;hi&quot;"> <p class="c">say "hi"</p><script>var a = "x";</script> </div>`
	for _, parser := range []htmlnode.Parser{htmlnode.HTMLParser{}, htmlnode.TokenParser{}} {
		opts := &Options{DangerouslySetChildren: []string{"div", "style"}, Parser: parser}
		elem := mustElem(t, mustConvert(t, htmlStr, opts))
		raw, ok := elem.RawHTML()
		if !ok {
			t.Fatalf("%T: expected raw markup", parser)
		}
		expected := `<p class="c">say &quot;hi&quot;</p><script>var a = "x";</script>`
		if raw != expected {
			t.Fatalf("%T: raw markup %q, want %q", parser, raw, expected)
		}
		if elem.Children != nil {
			t.Fatalf("%T: expected no children, got %v", parser, elem.Children)
		}
		if elem.Props["title"] != `say "hi"` {
			t.Fatalf("%T: title %q", parser, elem.Props["title"])
		}
	}
	// empty inner markup falls back to a normal element
	elem := mustElem(t, mustConvert(t, `<div></div>`, &Options{DangerouslySetChildren: []string{"div"}}))
	if _, ok := elem.RawHTML(); ok {
		t.Fatalf("empty div should not get raw markup")
	}
	// an empty (non-nil) list disables passthrough, style children are kept
	elem = mustElem(t, mustConvert(t, `<style>.a{}</style>`, &Options{DangerouslySetChildren: []string{}}))
	if _, ok := elem.RawHTML(); ok || len(elem.Children) != 1 || elem.Children[0].Text != ".a{}" {
		t.Fatalf("style without passthrough: %#v", elem)
	}
}

func TestKeyDeterminism(t *testing.T) {
	htmlStr := `<ul><!-- c --><li>a</li><li><b>b</b></li></ul><p>x</p>`
	first := mustConvert(t, htmlStr, nil)
	second := mustConvert(t, htmlStr, nil)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated conversion differs:\n%s", diff)
	}
	parts := first.([]any)
	ul := mustElem(t, parts[0])
	// the comment still takes position 0
	if ul.Children[0].Key() != "0.1" || ul.Children[1].Key() != "0.2" || ul.Children[1].Children[0].Key() != "0.2.0" {
		barr, _ := json.MarshalIndent(ul, "", "  ")
		t.Fatalf("unexpected keys:\n%s", barr)
	}
}

func TestKeyAttributeOverridden(t *testing.T) {
	elem := mustElem(t, mustConvert(t, `<div key="mine"></div>`, nil))
	if elem.Key() != "0" {
		t.Fatalf("key: %q", elem.Key())
	}
}

func TestTransforms(t *testing.T) {
	var defaultTags []string
	opts := &Options{
		Transform: Transform{
			Elems: map[string]ElemFunc{
				"P": func(props map[string]any, children []any) any {
					return vdom.H("Para", props, children...)
				},
				"br": func(props map[string]any, children []any) any {
					if children != nil {
						t.Fatalf("br should get nil children, got %#v", children)
					}
					return nil
				},
			},
			Default: func(tag string, props map[string]any, children []any) any {
				defaultTags = append(defaultTags, tag)
				return vdom.H(tag, props, children...)
			},
			Text: func(s string) any {
				return strings.ToUpper(s)
			},
		},
	}
	elem := mustElem(t, mustConvert(t, `<div><p>a</p>b<br><!--c--></div>`, opts))
	expected := &vdom.VDomElem{
		Tag:   "div",
		Props: map[string]any{"key": "0"},
		Children: []vdom.VDomElem{
			{Tag: "Para", Props: map[string]any{"key": "0.0"}, Children: []vdom.VDomElem{text("A")}},
			text("B"),
		},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("transforms (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"div"}, defaultTags); diff != "" {
		t.Fatalf("default transform tags (-want +got):\n%s", diff)
	}
}

func TestTransformPanic(t *testing.T) {
	opts := &Options{
		Transform: Transform{
			Elems: map[string]ElemFunc{
				"b": func(props map[string]any, children []any) any {
					panic("bad transform")
				},
			},
		},
	}
	rtn, err := Convert("<p><b>x</b></p>", opts)
	if rtn != nil {
		t.Fatalf("expected nil result, got %#v", rtn)
	}
	var panicErr *panichandler.PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected *panichandler.PanicError, got %v", err)
	}
	if panicErr.Value != "bad transform" {
		t.Fatalf("unexpected panic value %#v", panicErr.Value)
	}
}

func TestStyleObjects(t *testing.T) {
	opts := &Options{StyleObjects: true}
	elem := mustElem(t, mustConvert(t, `<div style="color: red; margin-top: 5px"></div>`, opts))
	expected := map[string]any{"color": "red", "marginTop": "5px"}
	if diff := cmp.Diff(expected, elem.Props["style"]); diff != "" {
		t.Fatalf("style object (-want +got):\n%s", diff)
	}
	elem = mustElem(t, mustConvert(t, `<div style="color red"></div>`, opts))
	if elem.Props["style"] != "color red" {
		t.Fatalf("bad style should stay a string: %#v", elem.Props["style"])
	}
	log.Printf("bad style handled\n")
	elem = mustElem(t, mustConvert(t, `<div style="color: red"></div>`, nil))
	if elem.Props["style"] != "color: red" {
		t.Fatalf("style objects are opt-in: %#v", elem.Props["style"])
	}
}

func TestMinifyStyle(t *testing.T) {
	elem := mustElem(t, mustConvert(t, "<style>\n  .a { color : red ; }\n</style>", &Options{MinifyStyle: true}))
	raw, _ := elem.RawHTML()
	if raw != ".a{color:red}" {
		t.Fatalf("minified style: %q", raw)
	}
}

func TestTokenParserOption(t *testing.T) {
	opts := &Options{Parser: htmlnode.TokenParser{}}
	elem := mustElem(t, mustConvert(t, `<Button CLASS="b" onClick="x" Disabled>go</Button>`, opts))
	expected := &vdom.VDomElem{
		Tag:      "button",
		Props:    map[string]any{"className": "b", "onClick": "x", "disabled": true, "key": "0"},
		Children: []vdom.VDomElem{text("go")},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("token parser (-want +got):\n%s", diff)
	}
}

func TestUnknownTag(t *testing.T) {
	elem := mustElem(t, mustConvert(t, `<my-widget foo="1" tabindex="3">x</my-widget>`, nil))
	expected := &vdom.VDomElem{
		Tag:      "my-widget",
		Props:    map[string]any{"foo": "1", "tabIndex": "3", "key": "0"},
		Children: []vdom.VDomElem{text("x")},
	}
	if diff := cmp.Diff(expected, elem); diff != "" {
		t.Fatalf("unknown tag (-want +got):\n%s", diff)
	}
}

func TestToElems(t *testing.T) {
	rtn := mustConvert(t, "a<b>x</b>", nil)
	elems := ToElems(rtn)
	if len(elems) != 2 || !elems[0].IsText() || elems[1].Tag != "b" {
		t.Fatalf("ToElems: %#v", elems)
	}
}
