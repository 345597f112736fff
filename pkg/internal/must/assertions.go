// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package must turns programmer errors, such as a broken embedded asset
// tree, into panics. Operating errors are returned, never asserted.
package must

import "fmt"

// Succeed panics on error.
func Succeed[T any](obj T, err error) T {
	if err != nil {
		panic(fmt.Errorf("assertion broken: %w", err))
	}
	return obj
}
