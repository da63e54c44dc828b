// Package filter decides which verdict messages reach the outputs.
package filter

import "github.com/vearne/grpcsniff/protocol"

// Filter passes msg on when ok is true. A filter may return a different
// message than the one it got.
type Filter interface {
	Filter(msg *protocol.Message) (*protocol.Message, bool)
}

// FilterFunc adapts a predicate to Filter.
type FilterFunc func(msg *protocol.Message) bool

func (f FilterFunc) Filter(msg *protocol.Message) (*protocol.Message, bool) {
	if f(msg) {
		return msg, true
	}
	return nil, false
}

// FilterChain lets a message through when every include filter and every
// exclude filter passes it. An empty chain passes everything.
type FilterChain struct {
	include []Filter
	exclude []Filter
}

func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

func (c *FilterChain) AddIncludeFilter(f Filter) {
	c.include = append(c.include, f)
}

func (c *FilterChain) AddExcludeFilter(f Filter) {
	c.exclude = append(c.exclude, f)
}

// Len returns the number of filters in the chain.
func (c *FilterChain) Len() int {
	return len(c.include) + len(c.exclude)
}

func (c *FilterChain) Filter(msg *protocol.Message) (*protocol.Message, bool) {
	var ok bool
	for _, group := range [][]Filter{c.include, c.exclude} {
		for _, f := range group {
			if msg, ok = f.Filter(msg); !ok {
				return nil, false
			}
		}
	}
	return msg, true
}
