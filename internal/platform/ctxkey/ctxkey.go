// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey names the per-request values the registry API threads
// through [context.Context]: correlation ID, request logger and the caller's
// token claims. Read and write them through package ctxutil.
package ctxkey

// key is unexported so no other package can mint a colliding key.
type key int

const (
	// KeyRequestID holds the X-Request-ID of the current call.
	KeyRequestID key = iota

	// KeyUser holds the verified [sec.AuthClaims] of an editor or admin.
	KeyUser

	// KeyLogger holds the request-scoped [*log/slog.Logger].
	KeyLogger
)
