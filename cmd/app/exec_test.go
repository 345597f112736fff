// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/util/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteConfig(t *testing.T) {
	dir := tests.TempDir(t)
	tpl := strings.Replace(string(siteconfig.DefaultTemplate()), "translationProgress: 25", "translationProgress: {{ .progress }}", 1)
	tests.WriteFiles(t, dir, map[string]string{"site.yaml": tpl})

	_, err := loadSiteConfig(options{ConfigPath: filepath.Join(dir, "site.yaml")})
	require.Error(t, err, "missing variables must fail")

	cfg, err := loadSiteConfig(options{
		ConfigPath: filepath.Join(dir, "site.yaml"),
		Variables:  map[string]string{"progress": "60"},
	})
	require.NoError(t, err)
	p, ok := cfg.TranslationProgress()
	assert.True(t, ok)
	assert.Equal(t, 60.0, p)
	assert.Contains(t, cfg.ThemeConfig.Footer.Copyright, strconv.Itoa(time.Now().Year()))
}

func TestNewBuilder(t *testing.T) {
	dir := tests.TempDir(t)
	tests.WriteFiles(t, dir, map[string]string{"site.yaml": string(siteconfig.DefaultTemplate())})
	b, err := newBuilder(options{
		ConfigPath:           filepath.Join(dir, "site.yaml"),
		DocsDir:              "d",
		PagesDir:             "p",
		StaticDir:            "s",
		DocumentWorkersCount: 3,
		FailFast:             true,
		ProgressFromDocs:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "d", b.Options.DocsDir)
	assert.Equal(t, "p", b.Options.PagesDir)
	assert.Equal(t, "s", b.Options.StaticDir)
	assert.Equal(t, 3, b.Options.DocumentWorkers)
	assert.True(t, b.Options.FailFast)
	assert.True(t, b.Options.ProgressFromDocs)
}

func TestInitConfigNestedDir(t *testing.T) {
	dir := tests.TempDir(t)
	cmd := NewCommand(context.Background())
	cmd.SetArgs([]string{"init", "--config", filepath.Join(dir, "conf", "site.yaml")})
	require.NoError(t, cmd.Execute())
	b, err := os.ReadFile(filepath.Join(dir, "conf", "site.yaml"))
	require.NoError(t, err)
	assert.Equal(t, siteconfig.DefaultTemplate(), b)
}
