// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates a version command printing
// the binary version
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// Version is set at compile time with
// -ldflags "-X github.com/filamentenespanol/sitegen/cmd/version.Version=<X.Y>"
var Version = "binary was not built properly"
