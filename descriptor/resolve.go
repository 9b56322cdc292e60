// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"path"

	"github.com/pkg/errors"
)

// ResolveSplit returns the given split's entry with every path anchored at the
// descriptor's root. Paths that are already absolute are left alone. It
// returns (nil, nil) when the split was not provided, and ErrUnknownSplit for
// roles other than train, val and test.
//
// The returned entry is a copy; the descriptor itself is never mutated.
func (d *Descriptor) ResolveSplit(split Split) (*SplitEntry, error) {
	switch split {
	case Train, Val, Test:
	default:
		return nil, errors.Wrapf(ErrUnknownSplit, "%q (want one of train, val, test)", split)
	}
	entry := d.Splits[split].clone()
	if entry == nil {
		return nil, nil
	}
	switch entry.Kind {
	case SplitDirectory, SplitListingFile:
		entry.Path = joinRoot(d.Path, entry.Path)
	case SplitPathList:
		for i, p := range entry.Paths {
			entry.Paths[i] = joinRoot(d.Path, p)
		}
	}
	return entry, nil
}

func joinRoot(root, p string) string {
	if path.IsAbs(p) {
		return p
	}
	return path.Join(root, p)
}
