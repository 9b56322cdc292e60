// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains small filesystem helpers shared by fetch, scan and
// the CLI.
package fsutil

import (
	"io/fs"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Exists returns whether the file or directory exists, or an error if the
// filesystem could not be asked.
func Exists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %q", filePath)
}

// IsDir returns whether filePath exists and is a directory.
func IsDir(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to stat %q", filePath)
	}
	return info.IsDir(), nil
}

// ExpandTilde replaces a leading "~" or "~user" with the corresponding home
// directory. Paths without a leading tilde are returned unchanged.
func ExpandTilde(dir string) (string, error) {
	if dir == "" || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		rest := dir[1:]
		if sep := strings.IndexRune(rest, '/'); sep >= 0 {
			userName = rest[:sep]
		} else {
			userName = rest
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to find home directory for path %q", dir)
	}
	return path.Join(usr.HomeDir, dir[1+len(userName):]), nil
}

// DirSize returns the total size in bytes of the regular files under dir,
// recursively. A missing dir yields 0.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "failed to measure %q", dir)
	}
	return total, nil
}
