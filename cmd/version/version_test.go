// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"bytes"

	"github.com/filamentenespanol/sitegen/cmd/version"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("version", func() {
	It("should not return a specific version number", func() {
		Expect(version.Version).To(Equal("binary was not built properly"))
	})
	It("prints the version", func() {
		var out bytes.Buffer
		cmd := version.NewVersionCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(Equal("binary was not built properly\n"))
	})
})
