// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/filamentenespanol/sitegen/cmd/gendocs"
	"github.com/filamentenespanol/sitegen/cmd/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	envPrefix = "SITEGEN"
	// OptionsFileEnv names an optional file with command options
	OptionsFileEnv = "SITEGEN_OPTIONS"
)

var klogFlags sync.Once

// NewCommand creates a new root command and propagates
// the context to its Run callback closures
func NewCommand(ctx context.Context) *cobra.Command {
	vip := viper.New()
	cmd := &cobra.Command{
		Use:   "sitegen",
		Short: "Build the Filament en español documentation site",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureViper(vip)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return exec(ctx, vip, cmd.OutOrStdout())
		},
	}
	configureFlags(cmd, vip)

	cmd.AddCommand(newServeCmd(ctx, vip))
	cmd.AddCommand(newConfigCmd(vip))
	cmd.AddCommand(newInitCmd(vip))
	cmd.AddCommand(version.NewVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(gendocs.NewGenCmdDocs())

	klogFlags.Do(func() {
		klog.InitFlags(nil)
	})
	AddFlags(cmd)

	return cmd
}

func newServeCmd(ctx context.Context, vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site for local development",
		Long: `Builds the site and serves it from memory. The cookie consent banner is
rendered per request from the visitor's cookie and decisions are posted to
{baseUrl}consent. With --watch the site is rebuilt when the sources change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return serve(ctx, vip)
		},
	}
	configureServeFlags(cmd, vip)
	return cmd
}

func newConfigCmd(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved site configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return printConfig(vip, cmd.OutOrStdout())
		},
	}
	configureConfigFlags(cmd, vip)
	return cmd
}

func newInitCmd(vip *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the canonical site configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return initConfig(vip)
		},
	}
}

// configureViper enables SITEGEN_ environment variables and reads the
// options file named by SITEGEN_OPTIONS. Flags set on the command line
// take precedence over both.
func configureViper(vip *viper.Viper) error {
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	optionsFile, found := os.LookupEnv(OptionsFileEnv)
	if !found {
		return nil
	}
	if optionsFile == "" {
		return fmt.Errorf("the provided environment variable %s is set to empty string", OptionsFileEnv)
	}
	vip.SetConfigFile(optionsFile)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read options file %s: %w", optionsFile, err)
	}
	klog.V(6).Infof("options loaded from %s", vip.ConfigFileUsed())
	return nil
}
