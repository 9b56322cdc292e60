// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	d, err := LoadFile("testdata/imagenet10.yaml")
	require.NoError(t, err)

	assert.Equal(t, "../datasets/imagenet10", d.Path)
	require.Equal(t, 10, d.NumClasses())
	assert.Equal(t, "tench", d.ClassName(0))
	assert.Equal(t, "great white shark", d.ClassName(2))
	assert.Equal(t, "ostrich", d.ClassName(9))
	assert.Equal(t, "", d.ClassName(10), "out-of-range index yields empty name")

	require.NotNil(t, d.Splits[Train])
	assert.Equal(t, SplitDirectory, d.Splits[Train].Kind)
	assert.Equal(t, "train", d.Splits[Train].Path)
	require.NotNil(t, d.Splits[Val])
	assert.Nil(t, d.Splits[Test], "test split not provided")

	assert.True(t, d.Usable())
	assert.Equal(t, "https://github.com/ultralytics/yolov5/releases/download/v1.0/imagenet10.zip", d.Download)
}

func TestLoadIsIdempotent(t *testing.T) {
	first, err := LoadFile("testdata/imagenet10.yaml")
	require.NoError(t, err)
	second, err := LoadFile("testdata/imagenet10.yaml")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadSplitVariants(t *testing.T) {
	d, err := Load(strings.NewReader(`
path: ../datasets/coco128
train: images/train2017
val: autosplit_val.txt
test: [images/test-a, images/test-b]
names:
  0: person
  1: bicycle
`))
	require.NoError(t, err)

	require.NotNil(t, d.Splits[Train])
	assert.Equal(t, SplitDirectory, d.Splits[Train].Kind)

	require.NotNil(t, d.Splits[Val])
	assert.Equal(t, SplitListingFile, d.Splits[Val].Kind)
	assert.Equal(t, "autosplit_val.txt", d.Splits[Val].Path)

	require.NotNil(t, d.Splits[Test])
	assert.Equal(t, SplitPathList, d.Splits[Test].Kind)
	assert.Equal(t, []string{"images/test-a", "images/test-b"}, d.Splits[Test].Paths)
}

func TestLoadNamesAsSequence(t *testing.T) {
	d, err := Load(strings.NewReader(`
path: data
train: train
names: [cat, dog]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, d.Names)
}

func TestLoadNoSplits(t *testing.T) {
	// Zero splits is structurally valid, just unusable for training.
	d, err := Load(strings.NewReader(`
path: data
names:
  0: cat
`))
	require.NoError(t, err)
	assert.False(t, d.Usable())
}

func TestLoadNullSplitIsAbsent(t *testing.T) {
	d, err := Load(strings.NewReader(`
path: data
train: train
test:
names:
  0: cat
`))
	require.NoError(t, err)
	assert.Nil(t, d.Splits[Test])
}

func TestLoadClassCount(t *testing.T) {
	_, err := Load(strings.NewReader(`
path: data
train: train
nc: 2
names:
  0: cat
`))
	require.ErrorIs(t, err, ErrClassCountMismatch)

	d, err := Load(strings.NewReader(`
path: data
train: train
nc: 1
names:
  0: cat
`))
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumClasses())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"not yaml", "path: [unclosed", ErrMalformedSource},
		{"scalar document", "just a string", ErrMalformedSource},
		{"empty document", "", ErrMissingField},
		{"missing path", "names:\n  0: cat\n", ErrMissingField},
		{"empty path", "path: \"\"\nnames:\n  0: cat\n", ErrMissingField},
		{"missing names", "path: data\ntrain: train\n", ErrMissingField},
		{"empty names", "path: data\nnames:\n", ErrMissingField},
		{"gap in indices", "path: data\nnames:\n  0: cat\n  2: dog\n", ErrNonContiguousIndex},
		{"starts at one", "path: data\nnames:\n  1: cat\n  2: dog\n", ErrNonContiguousIndex},
		{"negative index", "path: data\nnames:\n  -1: cat\n  0: dog\n", ErrNonContiguousIndex},
		{"duplicate index", "path: data\nnames:\n  0: cat\n  0: dog\n", ErrDuplicateIndex},
		{"non-integer index", "path: data\nnames:\n  first: cat\n", ErrMalformedSource},
		{"names as scalar", "path: data\nnames: cat\n", ErrMalformedSource},
		{"split as mapping", "path: data\ntrain: {dir: train}\nnames:\n  0: cat\n", ErrMalformedSource},
		{"nc not an integer", "path: data\nnc: two\nnames:\n  0: cat\n", ErrMalformedSource},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(test.source))
			require.ErrorIs(t, err, test.want, "source:\n%s", test.source)
		})
	}
}

func TestLoadDuplicateLabelsAllowed(t *testing.T) {
	// Duplicate labels are discouraged but valid; only indices must be unique.
	d, err := Load(strings.NewReader(`
path: data
names:
  0: sign
  1: sign
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"sign", "sign"}, d.Names)
}
