// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gendocs

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/docs"
	"github.com/filamentenespanol/sitegen/pkg/markdown"
	"github.com/filamentenespanol/sitegen/pkg/writers"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// NewGenCmdDocs generates the commands reference as documentation pages
// that are built along with the rest of the docs
func NewGenCmdDocs() *cobra.Command {
	var destination string
	command := &cobra.Command{
		Use:   "gen-cmd-docs",
		Short: "Generates the commands reference as documentation pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true
			destination = filepath.Clean(destination)
			n, err := Generate(root, &writers.FSWriter{Root: destination})
			if err != nil {
				klog.Error(err)
				return err
			}
			klog.Infof("wrote %d command reference pages to %s", n, destination)
			return nil
		},
	}
	command.Flags().StringVarP(&destination, "destination", "d", filepath.Join("docs", "cli"),
		"Path to the docs directory where the reference pages are written. If it does not exist, it will be created.")
	return command
}

// Generate writes one markdown page per available command under root to w
// and returns the number of pages. Front matter titles each page with the
// command path and orders the sidebar as the command tree is walked.
func Generate(root *cobra.Command, w writers.Writer) (int, error) {
	var n int
	var walk func(c *cobra.Command) error
	walk = func(c *cobra.Command) error {
		if c != root && (!c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand()) {
			return nil
		}
		n++
		page, err := render(c, float64(n))
		if err != nil {
			return fmt.Errorf("rendering reference for %q failed: %w", c.CommandPath(), err)
		}
		if err := w.Write(FileName(c), "", page); err != nil {
			return err
		}
		for _, sub := range c.Commands() {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return n, err
	}
	return n, nil
}

// FileName is the reference page file of c, as linked from the pages of its
// parent and subcommands
func FileName(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "_") + ".md"
}

func render(c *cobra.Command, position float64) ([]byte, error) {
	fm, err := yaml.Marshal(&docs.FrontMatter{
		Title:           c.CommandPath(),
		Description:     c.Short,
		SidebarLabel:    c.Name(),
		SidebarPosition: &position,
	})
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	// pages sit side by side, so cobra's file links resolve as relative markdown links
	if err := doc.GenMarkdownCustom(c, &body, func(name string) string { return name }); err != nil {
		return nil, err
	}
	return markdown.InsertFrontMatter(fm, body.Bytes()), nil
}
