// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for registry rows.

Version 7 values sort by creation time, which keeps the "oldest association
first" ordering stable alongside the createdat column.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string. It panics if the entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
