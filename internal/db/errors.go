// Copyright (c) 2026 Tokenmaster Team
// Tokenmaster - API token management client
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "errors"

var (
	// ErrIndexOutOfRange is returned by DeleteAt for a position past the
	// end of the list.
	ErrIndexOutOfRange = errors.New("line out of range")
	// ErrUnsupportedStore is returned by New for an unknown store type.
	ErrUnsupportedStore = errors.New("unsupported store type")
)
