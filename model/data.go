package model

import (
	"sort"
	"strings"
)

// Data maps attribute names to values for a node variant. A Data value is
// never modified once it is attached to a node; With returns a copy.
type Data map[string]string

// NewData copies m. Nil and empty maps both give a nil Data.
func NewData(m map[string]string) Data {
	if len(m) == 0 {
		return nil
	}
	d := make(Data, len(m))
	for k, v := range m {
		d[k] = v
	}
	return d
}

// Get returns the value stored under key, or "" when it is absent.
func (d Data) Get(key string) string {
	return d[key]
}

// Lookup returns the value stored under key and whether it is set to a
// non-empty string.
func (d Data) Lookup(key string) (string, bool) {
	v, ok := d[key]
	return v, ok && v != ""
}

// With returns a copy of d with key set to value.
func (d Data) With(key, value string) Data {
	cpy := make(Data, len(d)+1)
	for k, v := range d {
		cpy[k] = v
	}
	cpy[key] = value
	return cpy
}

// Keys returns the attribute names in sorted order.
func (d Data) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Eq tests whether two data maps hold the same entries.
func (d Data) Eq(other Data) bool {
	if len(d) != len(other) {
		return false
	}
	for k, v := range d {
		if w, ok := other[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func (d Data) String() string {
	parts := make([]string, 0, len(d))
	for _, k := range d.Keys() {
		parts = append(parts, k+"="+d[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
