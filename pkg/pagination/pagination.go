// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page windows for the registry's list endpoints.
//
// Group listings are small and admin-facing, so a page defaults to
// [DefaultLimit] rows and an oversized limit is cut to [MaxLimit] instead of
// being discarded.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when "limit" is absent or unusable.
	DefaultLimit = 50
	// MaxLimit caps a single page of groups.
	MaxLimit = 200
	// DefaultPage is the first page; pages are 1-indexed.
	DefaultPage = 1
)

// Params is a requested page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip before the window starts.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta travels in the "meta" field of a paginated envelope.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta describes the window in a list response. A zero limit yields no pages.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads "page" and "limit" from the query string.
//
// Missing, malformed or non-positive values fall back to [DefaultPage] and
// [DefaultLimit]; a limit above [MaxLimit] is clamped to it.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page := intParam(query.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := intParam(query.Get("limit"), DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
