// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelPath(t *testing.T) {
	assert.Equal(t, "../tsrd/labels/train/0001.txt", LabelPath("../tsrd/images/train/0001.jpg"))
	assert.Equal(t, "data/labels/0002.txt", LabelPath("data/images/0002.png"))
	// Only the last "images" component is replaced.
	assert.Equal(t, "images/sets/labels/a.txt", LabelPath("images/sets/images/a.jpg"))
	// No "images" component: just swap the extension.
	assert.Equal(t, "raw/0003.txt", LabelPath("raw/0003.jpeg"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "0001", Stem("images/train/0001.jpg"))
	assert.Equal(t, "0001", Stem("0001.txt"))
	assert.Equal(t, "noext", Stem("dir/noext"))
}

func TestMatchByStem(t *testing.T) {
	base := t.TempDir()
	imagesDir := filepath.Join(base, "images")
	labelsDir := filepath.Join(base, "labels")
	require.NoError(t, os.MkdirAll(imagesDir, 0777))
	require.NoError(t, os.MkdirAll(labelsDir, 0777))

	for _, f := range []string{"0001.jpg", "0002.png", "0003.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(imagesDir, f), []byte("x"), 0644))
	}
	for _, f := range []string{"0001.txt", "0003.txt", "0099.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(labelsDir, f), []byte("x"), 0644))
	}

	matched, err := MatchByStem(imagesDir, labelsDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001.txt", "0003.txt"}, matched,
		"label files are matched to images by stem, extensions ignored")
}

func TestMatchByStemNotADirectory(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := MatchByStem(file, base)
	require.Error(t, err)
	_, err = MatchByStem(base, filepath.Join(base, "missing"))
	require.Error(t, err)
}
