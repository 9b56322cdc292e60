// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

// Package descriptor loads and validates dataset descriptor files: the small
// YAML documents ("data.yaml") that point a training or evaluation pipeline at
// a labeled image dataset -- its root directory, its train/val/test splits and
// its class-index-to-name table.
//
// A Descriptor is parsed and validated once, at startup, and is immutable
// afterwards. Loading is pure: no filesystem access happens beyond reading the
// source document itself. Expanding splits into image files lives in package
// scan, and downloading datasets lives in package fetch.
//
// Usage example:
//
//	desc, err := descriptor.LoadFile("data.yaml")
//	if err != nil { ... }
//	entry, err := desc.ResolveSplit(descriptor.Train)
package descriptor

// Split names one partition of a dataset, used for a distinct stage of the
// training workflow.
type Split string

const (
	Train Split = "train"
	Val   Split = "val"
	Test  Split = "test"
)

// Splits lists the split roles a descriptor may define, in canonical order.
var Splits = []Split{Train, Val, Test}

// SplitEntryKind tags the three representations a split entry may take in the
// source document.
type SplitEntryKind int

const (
	// SplitDirectory: the entry is a directory holding the split's images.
	SplitDirectory SplitEntryKind = iota
	// SplitListingFile: the entry is a text file listing one image path per line.
	SplitListingFile
	// SplitPathList: the entry is an explicit ordered sequence of paths.
	SplitPathList
)

// String implements fmt.Stringer.
func (k SplitEntryKind) String() string {
	switch k {
	case SplitDirectory:
		return "Directory"
	case SplitListingFile:
		return "ListingFile"
	case SplitPathList:
		return "PathList"
	}
	return "Unknown"
}

// SplitEntry is the tagged variant for one split of the dataset. Either Path
// (Directory and ListingFile kinds) or Paths (PathList kind) is set, never
// both. Entries hold the paths as written in the source, relative to the
// descriptor's root; use Descriptor.ResolveSplit to anchor them.
type SplitEntry struct {
	Kind  SplitEntryKind
	Path  string
	Paths []string
}

// clone returns a deep copy, so resolution never mutates the descriptor.
func (e *SplitEntry) clone() *SplitEntry {
	if e == nil {
		return nil
	}
	c := &SplitEntry{Kind: e.Kind, Path: e.Path}
	if e.Paths != nil {
		c.Paths = append([]string{}, e.Paths...)
	}
	return c
}

// Descriptor is the validated, in-memory form of a dataset configuration
// document. It is immutable after Load returns it.
type Descriptor struct {
	// Path is the dataset root directory. May be relative to an implicit
	// parent directory; never empty.
	Path string

	// Splits maps each provided split role to its entry. Absent splits have
	// no key.
	Splits map[Split]*SplitEntry

	// Names is the class-index-to-name table. Index i holds the name of
	// class i; validation guarantees the source indices were exactly
	// 0..len(Names)-1.
	Names []string

	// Download optionally references an external script or URL that
	// materializes the dataset under Path. Informational: nothing in this
	// package ever runs it.
	Download string
}

// NumClasses returns the number of entries in the class table.
func (d *Descriptor) NumClasses() int { return len(d.Names) }

// ClassName returns the label for the given class index, or "" if the index
// is out of range.
func (d *Descriptor) ClassName(index int) string {
	if index < 0 || index >= len(d.Names) {
		return ""
	}
	return d.Names[index]
}

// Usable reports whether at least one split is defined. A descriptor with no
// splits is structurally valid but cannot feed a training pipeline; callers
// should surface this as a warning.
func (d *Descriptor) Usable() bool { return len(d.Splits) > 0 }
