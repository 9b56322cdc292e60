// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacard/datacard/descriptor"
)

func loadDescriptor(t *testing.T, source string) *descriptor.Descriptor {
	t.Helper()
	d, err := descriptor.Load(strings.NewReader(source))
	require.NoError(t, err)
	return d
}

func TestMaterializeFromArchiveURL(t *testing.T) {
	base := t.TempDir()
	zipPath := makeZip(t, base, map[string]string{
		"imagenet10/train/0001.jpg": "img",
		"imagenet10/val/0002.jpg":   "img",
	})
	zipBytes, err := os.ReadFile(zipPath)
	require.NoError(t, err)
	server := newByteServer(t, zipBytes)

	d := loadDescriptor(t, `
path: datasets/imagenet10
train: train
val: val
names:
  0: tench
download: `+server.URL+`/imagenet10.zip
`)
	require.NoError(t, Materialize(d, base))
	assert.FileExists(t, filepath.Join(base, "datasets", "imagenet10", "train", "0001.jpg"))

	// Root now exists: materializing again is a no-op.
	server.Close()
	require.NoError(t, Materialize(d, base))
}

func TestMaterializeExistingRoot(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "ds"), 0777))

	d := loadDescriptor(t, `
path: ds
train: train
names:
  0: tench
`)
	require.NoError(t, Materialize(d, base), "existing root needs no download reference")
}

func TestMaterializeMissingReference(t *testing.T) {
	d := loadDescriptor(t, `
path: ds
train: train
names:
  0: tench
`)
	err := Materialize(d, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no download reference")
}

func TestMaterializeRefusesScripts(t *testing.T) {
	d := loadDescriptor(t, `
path: ds
train: train
names:
  0: tench
download: bash data/scripts/get_imagenet10.sh
`)
	err := Materialize(d, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to execute")
}
