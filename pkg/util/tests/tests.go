// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package tests

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SetKlogV sets the logging flags when unit tests are run
func SetKlogV(level int) {
	l := strconv.Itoa(level)
	if f := flag.Lookup("v"); f != nil {
		_ = f.Value.Set(l)
	}
	if f := flag.Lookup("logtostderr"); f != nil {
		_ = f.Value.Set("true")
	}
}

// ReadBodyAndClose properly handles the reading of body and closing the reader
func ReadBodyAndClose(bodyReader io.ReadCloser) ([]byte, error) {
	defer bodyReader.Close()
	return io.ReadAll(bodyReader)
}

// TempDir creates a uniquely named directory removed when t finishes
func TempDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(os.TempDir(), "sitegen-"+uuid.New().String())
	require.NoError(t, os.MkdirAll(dir, os.ModePerm))
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// WriteFiles writes files, keyed by slash separated path relative to root
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), os.ModePerm))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}
