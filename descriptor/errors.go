// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package descriptor

import "github.com/pkg/errors"

// Sentinel errors returned by Load and ResolveSplit. They are usually wrapped
// with extra context; match them with errors.Is.
//
// Configuration loading is all-or-nothing: a descriptor is either fully valid
// or Load fails with one of these. Nothing here is worth retrying -- a
// malformed file stays malformed -- and callers are expected to abort startup
// on any of them, since a broken class table corrupts every label downstream.
var (
	// ErrMalformedSource: the input is not parseable as a YAML mapping, or a
	// field has a structurally impossible value.
	ErrMalformedSource = errors.New("malformed descriptor source")

	// ErrMissingField: a required key ("path", "names") is absent or empty.
	ErrMissingField = errors.New("missing required field")

	// ErrNonContiguousIndex: the class index mapping has gaps or does not
	// start at 0.
	ErrNonContiguousIndex = errors.New("class indices not contiguous from 0")

	// ErrDuplicateIndex: the same class index appears more than once.
	ErrDuplicateIndex = errors.New("duplicate class index")

	// ErrClassCountMismatch: the optional "nc" key disagrees with the number
	// of entries under "names".
	ErrClassCountMismatch = errors.New("nc does not match number of class names")

	// ErrUnknownSplit: ResolveSplit was asked for a role other than
	// train, val or test.
	ErrUnknownSplit = errors.New("unknown split")
)
