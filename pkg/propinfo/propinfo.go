// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package propinfo resolves html attribute names to element property names
// (case-insensitive, "tabindex" => "tabIndex") and decides which properties are boolean.
// Results are memoized per tag; a Cache is safe for concurrent use.
package propinfo

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
)

// Prober stands in for a scratch element instance of a tag
type Prober interface {
	// enumerable property names of a scratch element of tag
	PropNames(tag string) []string
	// set attribute name on a scratch element of tag, does the property read back as true?
	ProbeBoolean(tag string, name string) bool
}

// properties whose booleanness cannot be probed by setting the attribute
// (the muted attribute only sets defaultMuted, itemScope has no reflected property)
var DefaultBooleanOverrides = []string{"muted", "itemScope"}

type boolKey struct {
	Tag  string
	Prop string
}

type Cache struct {
	lock      *sync.RWMutex
	prober    Prober
	overrides map[string]bool
	names     map[string]map[string]string // tag -> lower-cased prop -> prop
	bools     map[boolKey]bool
}

func MakeCache(prober Prober) *Cache {
	if prober == nil {
		prober = MakeStaticProber()
	}
	rtn := &Cache{
		lock:      &sync.RWMutex{},
		prober:    prober,
		overrides: make(map[string]bool),
		names:     make(map[string]map[string]string),
		bools:     make(map[boolKey]bool),
	}
	rtn.addOverrides(DefaultBooleanOverrides)
	return rtn
}

func (c *Cache) addOverrides(names []string) {
	for _, name := range names {
		c.overrides[strings.ToLower(name)] = true
	}
}

// WithBooleanOverrides adds names to the boolean override list (case-insensitive)
func (c *Cache) WithBooleanOverrides(names ...string) *Cache {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.addOverrides(names)
	// cached negatives may be stale now
	c.bools = make(map[boolKey]bool)
	return c
}

var defaultCache *Cache
var defaultCacheOnce sync.Once

// Default returns the process-wide cache (static prober), created on first use
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = MakeCache(nil)
	})
	return defaultCache
}

func (c *Cache) tagIndex(tag string) map[string]string {
	c.lock.RLock()
	index, ok := c.names[tag]
	c.lock.RUnlock()
	if ok {
		return index
	}
	propNames := c.prober.PropNames(tag)
	index = make(map[string]string, len(propNames))
	for _, propName := range propNames {
		index[strings.ToLower(propName)] = propName
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	if existing, ok := c.names[tag]; ok {
		return existing
	}
	c.names[tag] = index
	return index
}

// PropName returns the property name for attrName, or attrName itself if tag has no such property
func (c *Cache) PropName(tag string, attrName string) string {
	index := c.tagIndex(tag)
	propName, ok := index[strings.ToLower(attrName)]
	if !ok {
		return attrName
	}
	return propName
}

func (c *Cache) IsBoolean(tag string, propName string) bool {
	key := boolKey{Tag: tag, Prop: propName}
	c.lock.RLock()
	isBool, ok := c.bools[key]
	isOverride := c.overrides[strings.ToLower(propName)]
	c.lock.RUnlock()
	if ok {
		return isBool
	}
	isBool = isOverride || c.prober.ProbeBoolean(tag, propName)
	c.lock.Lock()
	c.bools[key] = isBool
	c.lock.Unlock()
	return isBool
}

// Resolve returns (property name, is boolean) for an attribute of tag
func (c *Cache) Resolve(tag string, attrName string) (string, bool) {
	propName := c.PropName(tag, attrName)
	return propName, c.IsBoolean(tag, propName)
}

// PropNames returns the sorted property names of tag
func (c *Cache) PropNames(tag string) []string {
	index := c.tagIndex(tag)
	set := treeset.NewWithStringComparator()
	for _, propName := range index {
		set.Add(propName)
	}
	rtn := make([]string, 0, set.Size())
	for _, val := range set.Values() {
		rtn = append(rtn, val.(string))
	}
	return rtn
}
