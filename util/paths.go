// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// AbsolutePath - a relative name is taken from directory
func AbsolutePath(directory string, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(directory, name)
}

// AbsolutePaths - rewrite each name in place with AbsolutePath
func AbsolutePaths(directory string, names ...*string) {
	for _, name := range names {
		*name = AbsolutePath(directory, *name)
	}
}

// Exists - whether anything is at the path, a dangling link included,
// so that key and certificate files are never written through one
func Exists(name string) bool {
	_, err := os.Lstat(name)
	return nil == err
}
