// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

// Package scan expands a resolved split entry into the image files it names.
//
// This is the downstream half of a descriptor: package descriptor tells you
// where a split lives (a directory, a listing file or an explicit path list),
// and scan turns that into a deterministic, sorted slice of image paths, plus
// helpers to pair images with their label files.
package scan

import (
	"bufio"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/datacard/datacard/descriptor"
)

// ImageExtensions are the file suffixes recognized as images, lower-case with
// the leading dot.
var ImageExtensions = []string{".bmp", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}

// IsImage reports whether filePath has one of the recognized image suffixes.
func IsImage(filePath string) bool {
	ext := strings.ToLower(path.Ext(filePath))
	return slices.Contains(ImageExtensions, ext)
}

// Images expands a resolved split entry into the image files it names, in
// sorted order. Directories are walked recursively; listing files contribute
// one path per line, with "./"-relative lines anchored at the listing file's
// parent directory; explicit path lists expand each element in turn (each may
// itself be a directory or a listing file). Non-image files are skipped.
//
// A nil entry (a split the descriptor did not provide) yields nil.
func Images(entry *descriptor.SplitEntry) ([]string, error) {
	if entry == nil {
		return nil, nil
	}
	var images []string
	var err error
	switch entry.Kind {
	case descriptor.SplitDirectory:
		images, err = walkImages(entry.Path)
	case descriptor.SplitListingFile:
		images, err = readListing(entry.Path)
	case descriptor.SplitPathList:
		for _, p := range entry.Paths {
			var part []string
			if strings.HasSuffix(p, ".txt") {
				part, err = readListing(p)
			} else {
				part, err = walkImages(p)
			}
			if err != nil {
				break
			}
			images = append(images, part...)
		}
	default:
		return nil, errors.Errorf("unsupported split entry kind %s", entry.Kind)
	}
	if err != nil {
		return nil, err
	}
	slices.Sort(images)
	return images, nil
}

// walkImages collects every image file under dir, recursively.
func walkImages(dir string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(dir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsImage(filePath) {
			images = append(images, filepath.ToSlash(filePath))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan images under %q", dir)
	}
	return images, nil
}

// readListing reads one image path per line from a listing file. Blank lines
// and "#" comments are skipped. Lines starting with "./" are taken relative
// to the listing file's parent directory, matching the convention of
// autosplit listings.
func readListing(listPath string) ([]string, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open split listing %q", listPath)
	}
	defer func() { _ = f.Close() }()

	parent := path.Dir(listPath)
	var images []string
	lines := bufio.NewScanner(f)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "./") {
			line = path.Join(parent, line[2:])
		}
		if !IsImage(line) {
			continue
		}
		images = append(images, line)
	}
	if err := lines.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read split listing %q", listPath)
	}
	return images, nil
}
