// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

// options are the parameters shared by all commands that read the
// site sources
type options struct {
	ConfigPath           string            `mapstructure:"config"`
	DestinationPath      string            `mapstructure:"destination"`
	DocsDir              string            `mapstructure:"docs-dir"`
	PagesDir             string            `mapstructure:"pages-dir"`
	StaticDir            string            `mapstructure:"static-dir"`
	DocumentWorkersCount int               `mapstructure:"document-workers"`
	FailFast             bool              `mapstructure:"fail-fast"`
	DryRun               bool              `mapstructure:"dry-run"`
	ProgressFromDocs     bool              `mapstructure:"progress-from-docs"`
	Variables            map[string]string `mapstructure:"variables"`
}

// serveOptions configure the development server
type serveOptions struct {
	options `mapstructure:",squash"`
	Port    int  `mapstructure:"port"`
	Watch   bool `mapstructure:"watch"`
}

// configOptions configure the config command
type configOptions struct {
	options      `mapstructure:",squash"`
	ValidateOnly bool `mapstructure:"validate-only"`
}
