// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func configureFlags(command *cobra.Command, vip *viper.Viper) {
	command.PersistentFlags().StringP("config", "c", "site.yaml",
		"Site configuration file.")
	_ = vip.BindPFlag("config", command.PersistentFlags().Lookup("config"))

	command.PersistentFlags().String("docs-dir", "docs",
		"Directory with the documentation markdown files.")
	_ = vip.BindPFlag("docs-dir", command.PersistentFlags().Lookup("docs-dir"))

	command.PersistentFlags().String("pages-dir", "pages",
		"Directory with standalone markdown pages. A page named privacy.md is served at {baseUrl}privacy/.")
	_ = vip.BindPFlag("pages-dir", command.PersistentFlags().Lookup("pages-dir"))

	command.PersistentFlags().String("static-dir", "static",
		"Directory copied verbatim to the site root.")
	_ = vip.BindPFlag("static-dir", command.PersistentFlags().Lookup("static-dir"))

	command.PersistentFlags().StringToString("variables", map[string]string{},
		"Variables applied to the site configuration file, which is a Go template. The year variable is always set.")
	_ = vip.BindPFlag("variables", command.PersistentFlags().Lookup("variables"))

	command.PersistentFlags().Int("document-workers", 25,
		"Number of parallel workers for page rendering.")
	_ = vip.BindPFlag("document-workers", command.PersistentFlags().Lookup("document-workers"))

	command.PersistentFlags().Bool("fail-fast", false,
		"Fail-fast vs fault tolerant operation.")
	_ = vip.BindPFlag("fail-fast", command.PersistentFlags().Lookup("fail-fast"))

	command.PersistentFlags().Bool("progress-from-docs", false,
		"Compute the translation progress from the translated front matter flag of the docs instead of customFields.translationProgress.")
	_ = vip.BindPFlag("progress-from-docs", command.PersistentFlags().Lookup("progress-from-docs"))

	command.Flags().StringP("destination", "d", "build",
		"Destination path.")
	_ = vip.BindPFlag("destination", command.Flags().Lookup("destination"))

	command.Flags().Bool("dry-run", false,
		"Runs the command end-to-end but instead of writing files, it will output the projected file/folder hierarchy to the standard output.")
	_ = vip.BindPFlag("dry-run", command.Flags().Lookup("dry-run"))
}

func configureServeFlags(command *cobra.Command, vip *viper.Viper) {
	command.Flags().Int("port", 3000,
		"Port the development server listens on.")
	_ = vip.BindPFlag("port", command.Flags().Lookup("port"))

	command.Flags().Bool("watch", true,
		"Rebuild the site when the sources change.")
	_ = vip.BindPFlag("watch", command.Flags().Lookup("watch"))
}

func configureConfigFlags(command *cobra.Command, vip *viper.Viper) {
	command.Flags().Bool("validate-only", false,
		"Only validate the site configuration.")
	_ = vip.BindPFlag("validate-only", command.Flags().Lookup("validate-only"))
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		rootCmd.PersistentFlags().AddGoFlag(gf)
	})
}
