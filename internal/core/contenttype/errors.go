// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/taibuivan/yomira-cms/internal/platform/apperr"
)

// # Domain Errors

// Sentinels for [errors.Is]. The service returns them wrapped in an
// [apperr.AppError] so handlers can render them directly.
var (
	ErrGroupRequired  = errors.New("contenttype: group required")
	ErrTypeNotFound   = errors.New("contenttype: type not found")
	ErrNotConnectable = errors.New("contenttype: not a connectable type")
	ErrFrozen         = errors.New("contenttype: content type is frozen")
)

// GroupRequired reports a save attempted without a resolvable group.
func GroupRequired() *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldGroupName,
		Message: "A content type group is required",
	}).WithCause(ErrGroupRequired)
}

// TypeNotFound reports a key or name that resolves to no registered or persisted type.
func TypeNotFound(key string) *apperr.AppError {
	return apperr.New("TYPE_NOT_FOUND", http.StatusNotFound,
		fmt.Sprintf("Couldn't find content type for %q", key)).WithCause(ErrTypeNotFound)
}

// NotConnectable reports a registered type that is outside the connectable family.
func NotConnectable(name string) *apperr.AppError {
	return apperr.New("NOT_CONNECTABLE", http.StatusUnprocessableEntity,
		fmt.Sprintf("%s is not a connectable content type", name)).WithCause(ErrNotConnectable)
}

// Frozen reports a write attempted on an immutable content type.
func Frozen(name string) *apperr.AppError {
	return apperr.Unprocessable(fmt.Sprintf("%s is read-only", name)).WithCause(ErrFrozen)
}
