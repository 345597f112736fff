// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package link

import (
	"fmt"
	"net/url"
	"strings"
)

// Build joins the elements of a link. Path elements are not escaped,
// except for spaces which become %20.
func Build(elem ...string) (string, error) {
	if len(elem) == 0 {
		return "", nil
	}
	jointPath, err := url.JoinPath(elem[0], elem[1:]...)
	if err != nil {
		return "", fmt.Errorf("failed to join paths: %w", err)
	}
	if jointPath == "" {
		return ".", nil
	}
	unescaped, err := url.PathUnescape(jointPath)
	if err != nil {
		return "", fmt.Errorf("failed to unescape joint path: %w", err)
	}
	return strings.ReplaceAll(unescaped, " ", "%20"), nil
}
