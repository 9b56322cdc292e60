// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Marshal serializes the descriptor back to the configuration format.
// Reloading the output yields an equal descriptor. The class table is always
// written in the explicit index-to-name mapping form, with indices in order.
func (d *Descriptor) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	addKey := func(key string, value *yaml.Node) {
		root.Content = append(root.Content,
			scalarNode(key, "!!str"), value)
	}

	addKey("path", scalarNode(d.Path, "!!str"))
	for _, split := range Splits {
		entry := d.Splits[split]
		if entry == nil {
			continue
		}
		addKey(string(split), splitEntryNode(entry))
	}
	names := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, name := range d.Names {
		names.Content = append(names.Content,
			scalarNode(strconv.Itoa(i), "!!int"),
			scalarNode(name, "!!str"))
	}
	addKey("names", names)
	if d.Download != "" {
		addKey("download", scalarNode(d.Download, "!!str"))
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize descriptor")
	}
	return out, nil
}

// Encode writes the serialized descriptor to w.
func (d *Descriptor) Encode(w io.Writer) error {
	out, err := d.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return errors.Wrapf(err, "failed to write descriptor")
}

// WriteFile serializes the descriptor to filePath.
func (d *Descriptor) WriteFile(filePath string) error {
	out, err := d.Marshal()
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(filePath, out, 0644), "failed to write descriptor to %q", filePath)
}

func scalarNode(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func splitEntryNode(entry *SplitEntry) *yaml.Node {
	if entry.Kind == SplitPathList {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, p := range entry.Paths {
			seq.Content = append(seq.Content, scalarNode(p, "!!str"))
		}
		return seq
	}
	return scalarNode(entry.Path, "!!str")
}
