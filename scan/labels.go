// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package scan

import (
	"os"
	"path"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/datacard/datacard/pkg/support/fsutil"
)

// LabelPath maps an image path to its detection label file: the last "images"
// path component becomes "labels", and the image extension becomes ".txt".
// Paths without an "images" component keep their directory and only swap the
// extension.
func LabelPath(imgPath string) string {
	const imagesSeg, labelsSeg = "/images/", "/labels/"
	p := filepathToSlash(imgPath)
	if idx := strings.LastIndex(p, imagesSeg); idx >= 0 {
		p = p[:idx] + labelsSeg + p[idx+len(imagesSeg):]
	}
	ext := path.Ext(p)
	return p[:len(p)-len(ext)] + ".txt"
}

// Stem returns the file name without directory and extension.
func Stem(filePath string) string {
	base := path.Base(filepathToSlash(filePath))
	return strings.TrimSuffix(base, path.Ext(base))
}

// MatchByStem returns the names of the files in targetDir whose stem (name
// without extension) matches the stem of some file in sourceDir, sorted.
//
// This is the label-extraction chore of dataset curation: given a directory
// of validation images and a directory of label files, it finds the label
// files belonging to those images regardless of extension.
func MatchByStem(sourceDir, targetDir string) ([]string, error) {
	for _, dir := range []string{sourceDir, targetDir} {
		isDir, err := fsutil.IsDir(dir)
		if err != nil {
			return nil, err
		}
		if !isDir {
			return nil, errors.Errorf("%q is not a directory", dir)
		}
	}

	sourceEntries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read source directory %q", sourceDir)
	}
	stems := make(map[string]bool, len(sourceEntries))
	for _, entry := range sourceEntries {
		if entry.IsDir() {
			continue
		}
		stems[Stem(entry.Name())] = true
	}

	targetEntries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read target directory %q", targetDir)
	}
	var matched []string
	for _, entry := range targetEntries {
		if entry.IsDir() {
			continue
		}
		if stems[Stem(entry.Name())] {
			matched = append(matched, entry.Name())
		}
	}
	slices.Sort(matched)
	return matched, nil
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
