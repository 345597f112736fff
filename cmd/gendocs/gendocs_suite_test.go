// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gendocs_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestGendocs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gendocs Suite")
}
