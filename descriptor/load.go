// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// Load parses and validates a descriptor document from r.
//
// Load is pure: it reads r and nothing else, and either returns a fully valid
// Descriptor or one of the sentinel errors in this package (wrapped with
// context). Loading the same document twice yields equal descriptors.
func Load(r io.Reader) (*Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read descriptor source")
	}
	return Parse(data)
}

// LoadFile opens filePath and loads a descriptor from it.
func LoadFile(filePath string) (*Descriptor, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open descriptor %q", filePath)
	}
	defer func() { _ = f.Close() }()
	d, err := Load(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "descriptor %q", filePath)
	}
	return d, nil
}

// Parse parses and validates a descriptor document given as bytes.
//
// The document is decoded through the yaml.Node API instead of straight into
// structs: the class table needs its source order and raw integer keys to
// check contiguity and duplicates, and the split entries are a tagged variant
// (directory, listing file or path list) that plain struct decoding cannot
// distinguish.
func Parse(data []byte) (*Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedSource, "not valid YAML: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document: parseable, but every required key is absent.
		return nil, errors.Wrapf(ErrMissingField, "document is empty, %q and %q are required", "path", "names")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(ErrMalformedSource, "top-level document must be a mapping, got %s", kindName(root.Kind))
	}

	d := &Descriptor{Splits: make(map[Split]*SplitEntry)}
	var namesNode *yaml.Node
	declaredClasses := -1
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errors.Wrapf(ErrMalformedSource, "non-scalar key at line %d", key.Line)
		}
		switch key.Value {
		case "path":
			if value.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedSource, "%q must be a string, got %s (line %d)", "path", kindName(value.Kind), value.Line)
			}
			d.Path = value.Value
		case string(Train), string(Val), string(Test):
			entry, err := parseSplitEntry(key.Value, value)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				d.Splits[Split(key.Value)] = entry
			}
		case "names":
			namesNode = value
		case "nc":
			if value.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedSource, "%q must be an integer, got %s (line %d)", "nc", kindName(value.Kind), value.Line)
			}
			n, err := strconv.Atoi(value.Value)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedSource, "%q must be an integer, got %q (line %d)", "nc", value.Value, value.Line)
			}
			declaredClasses = n
		case "download":
			if value.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedSource, "%q must be a string, got %s (line %d)", "download", kindName(value.Kind), value.Line)
			}
			d.Download = strings.TrimSpace(value.Value)
		default:
			// Unknown keys are tolerated: descriptor files in the wild carry
			// extra metadata the loader has no business rejecting.
		}
	}

	if d.Path == "" {
		return nil, errors.Wrapf(ErrMissingField, "%q is required and must be non-empty", "path")
	}
	if namesNode == nil {
		return nil, errors.Wrapf(ErrMissingField, "%q is required", "names")
	}
	names, err := parseNames(namesNode)
	if err != nil {
		return nil, err
	}
	d.Names = names
	if declaredClasses >= 0 && declaredClasses != len(names) {
		return nil, errors.Wrapf(ErrClassCountMismatch, "nc=%d but %d names given", declaredClasses, len(names))
	}
	return d, nil
}

// parseSplitEntry decodes one train/val/test value into its tagged variant.
// A null scalar or an empty sequence means the split was not provided and
// yields (nil, nil).
func parseSplitEntry(split string, node *yaml.Node) (*SplitEntry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return nil, nil
		}
		if strings.HasSuffix(node.Value, ".txt") {
			return &SplitEntry{Kind: SplitListingFile, Path: node.Value}, nil
		}
		return &SplitEntry{Kind: SplitDirectory, Path: node.Value}, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		paths := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return nil, errors.Wrapf(ErrMalformedSource, "%q sequence must hold strings (line %d)", split, item.Line)
			}
			paths = append(paths, item.Value)
		}
		return &SplitEntry{Kind: SplitPathList, Paths: paths}, nil
	default:
		return nil, errors.Wrapf(ErrMalformedSource, "%q must be a string or a sequence of strings, got %s (line %d)", split, kindName(node.Kind), node.Line)
	}
}

// parseNames decodes the class table. The mapping form carries explicit
// integer indices that must be exactly 0..N-1 with no repeats; the sequence
// form indexes implicitly by position.
func parseNames(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.MappingNode:
		byIndex := make(map[int]string, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedSource, "class index must be an integer (line %d)", key.Line)
			}
			index, err := strconv.Atoi(key.Value)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedSource, "class index %q is not an integer (line %d)", key.Value, key.Line)
			}
			if value.Kind != yaml.ScalarNode {
				return nil, errors.Wrapf(ErrMalformedSource, "class name for index %d must be a string (line %d)", index, value.Line)
			}
			if previous, found := byIndex[index]; found {
				return nil, errors.Wrapf(ErrDuplicateIndex, "index %d maps to both %q and %q", index, previous, value.Value)
			}
			byIndex[index] = value.Value
		}
		if len(byIndex) == 0 {
			return nil, errors.Wrapf(ErrMissingField, "%q must be non-empty", "names")
		}
		names := make([]string, len(byIndex))
		for i := range names {
			label, found := byIndex[i]
			if !found {
				indices := maps.Keys(byIndex)
				slices.Sort(indices)
				return nil, errors.Wrapf(ErrNonContiguousIndex, "expected indices 0..%d, got %v", len(byIndex)-1, indices)
			}
			names[i] = label
		}
		return names, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, errors.Wrapf(ErrMissingField, "%q must be non-empty", "names")
		}
		names := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return nil, errors.Wrapf(ErrMalformedSource, "%q sequence must hold strings (line %d)", "names", item.Line)
			}
			names = append(names, item.Value)
		}
		return names, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, errors.Wrapf(ErrMissingField, "%q must be non-empty", "names")
		}
		return nil, errors.Wrapf(ErrMalformedSource, "%q must be a mapping or a sequence, got scalar (line %d)", "names", node.Line)
	default:
		return nil, errors.Wrapf(ErrMalformedSource, "%q must be a mapping or a sequence, got %s (line %d)", "names", kindName(node.Kind), node.Line)
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
