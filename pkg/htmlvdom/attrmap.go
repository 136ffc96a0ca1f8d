// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package htmlvdom

import (
	"strings"

	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/propinfo"
	"github.com/wavetermdev/htmlvdom/pkg/vdom"
)

// SpecialAttr maps an attribute whose prop name cannot be found by probing.
// Probe is the element property used for the boolean probe when it differs from Prop.
type SpecialAttr struct {
	Prop  string
	Probe string
}

func (sa SpecialAttr) probeName() string {
	if sa.Probe != "" {
		return sa.Probe
	}
	return sa.Prop
}

// keyed by lower-cased attribute name
var SpecialAttrs = map[string]SpecialAttr{
	"class":           {Prop: "className"},
	"for":             {Prop: "htmlFor"},
	"srcset":          {Prop: "srcSet"},
	"accept-charset":  {Prop: "acceptCharset"},
	"http-equiv":      {Prop: "httpEquiv"},
	"allowfullscreen": {Prop: "allowFullScreen", Probe: "allowFullscreen"},
	"autoplay":        {Prop: "autoPlay", Probe: "autoplay"},
	"autocomplete":    {Prop: "autoComplete", Probe: "autocomplete"},
	"autocapitalize":  {Prop: "autoCapitalize", Probe: "autocapitalize"},
	"charset":         {Prop: "charSet", Probe: "charset"},
	"enctype":         {Prop: "encType", Probe: "enctype"},
	"hreflang":        {Prop: "hrefLang", Probe: "hreflang"},
	"spellcheck":      {Prop: "spellCheck", Probe: "spellcheck"},
	"srcdoc":          {Prop: "srcDoc", Probe: "srcdoc"},
	"srclang":         {Prop: "srcLang", Probe: "srclang"},
	"itemscope":       {Prop: "itemScope"},
	"itemprop":        {Prop: "itemProp"},
	"itemtype":        {Prop: "itemType"},
	"itemid":          {Prop: "itemID"},
	"itemref":         {Prop: "itemRef"},
}

func boolAttrVal(val string) bool {
	return val != "false"
}

// MapAttributes converts the raw attributes of tag into framework props.
// tag must already be lower-cased. preserve is a set of attribute names to copy through unchanged.
func MapAttributes(cache *propinfo.Cache, tag string, attrs []htmlnode.Attr, preserve map[string]bool) map[string]any {
	if cache == nil {
		cache = propinfo.Default()
	}
	props := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if attr.Name == vdom.KeyPropKey {
			props[vdom.KeyPropKey] = attr.Value
			continue
		}
		if preserve[attr.Name] {
			props[attr.Name] = attr.Value
			continue
		}
		var propName string
		var isBool bool
		if special, ok := SpecialAttrs[strings.ToLower(attr.Name)]; ok {
			propName = special.Prop
			isBool = cache.IsBoolean(tag, special.probeName())
		} else {
			propName, isBool = cache.Resolve(tag, attr.Name)
		}
		if isBool {
			props[propName] = boolAttrVal(attr.Value)
		} else {
			props[propName] = attr.Value
		}
	}
	return props
}
