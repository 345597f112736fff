// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWrite(t *testing.T) {
	testCases := []struct {
		name         string
		path         string
		content      []byte
		wantErr      error
		wantWritten  bool
		wantFileName string
		wantContent  string
	}{
		{
			name:         "index.html",
			path:         "docs/intro",
			content:      []byte("<h1>Intro</h1>"),
			wantWritten:  true,
			wantFileName: "index.html",
			wantContent:  "<h1>Intro</h1>",
		},
		{
			name:         "404.html",
			path:         "",
			content:      []byte("<h1>404</h1>"),
			wantWritten:  true,
			wantFileName: "404.html",
			wantContent:  "<h1>404</h1>",
		},
		{
			name:         ".nojekyll",
			path:         "",
			content:      nil,
			wantWritten:  true,
			wantFileName: ".nojekyll",
			wantContent:  "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testFolder := fmt.Sprintf("test%s", uuid.New().String())
			testPath := filepath.Join(os.TempDir(), testFolder)
			fs := &FSWriter{
				Root: testPath,
			}
			fPath := filepath.Join(fs.Root, tc.path, tc.wantFileName)
			defer func() {
				if err := os.RemoveAll(testPath); err != nil {
					t.Fatalf("%v\n", err)
				}
			}()

			err := fs.Write(tc.name, tc.path, tc.content)

			assert.Equal(t, tc.wantErr, err)
			b, err := os.ReadFile(fPath)
			if !tc.wantWritten {
				assert.True(t, os.IsNotExist(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantContent, string(b))
		})
	}
}
