// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/gogpu/wrend/cache"

type cacheKey struct {
	src   string
	stage Stage
	opts  options
}

// Cache memoizes translations by source, stage and options. Failed
// translations are not cached. A Cache is safe for concurrent use.
type Cache struct {
	lru *cache.LRU[cacheKey, Result]
}

// NewCache returns a cache holding up to capacity translations.
func NewCache(capacity int) *Cache {
	return &Cache{lru: cache.New[cacheKey, Result](capacity)}
}

// Translate is the package Translate, reusing an earlier result for the
// same input.
func (c *Cache) Translate(src string, stage Stage, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r, err := c.lru.GetOrCreate(cacheKey{src: src, stage: stage, opts: o}, func() (Result, error) {
		r, err := translate(src, stage, o)
		if err != nil {
			return Result{}, err
		}
		return *r, nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Stats reports hits and misses.
func (c *Cache) Stats() cache.Stats { return c.lru.Stats() }

var defaultCache = NewCache(cache.DefaultCapacity)

// TranslateWGSL is Translate returning only the GLSL source. Results are
// shared through a process-wide cache, so building the same shaders for
// several renderers translates them once.
func TranslateWGSL(src string, stage Stage, opts ...Option) (string, error) {
	r, err := defaultCache.Translate(src, stage, opts...)
	if err != nil {
		return "", err
	}
	return r.Source, nil
}
