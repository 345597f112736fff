// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package osshim

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate -header ../../../license_prefix.txt

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Os is shim for the file system reads of site sources
//
//counterfeiter:generate . Os
type Os interface {
	ReadFile(name string) ([]byte, error)
	IsNotExist(err error) bool
	IsDir(path string) (bool, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OsShim is default Os implementation
type OsShim struct{}

// ReadFile see os.ReadFile
func (sh *OsShim) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// IsNotExist see os.IsNotExist
func (sh *OsShim) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// IsDir checks if a given path is a dir
func (sh *OsShim) IsDir(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stat.IsDir(), nil
}

// WalkDir see filepath.WalkDir
func (sh *OsShim) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
