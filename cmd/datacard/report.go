// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"

	"github.com/datacard/datacard/descriptor"
	"github.com/datacard/datacard/pkg/support/fsutil"
	"github.com/datacard/datacard/scan"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func printSummary(descPath string, d *descriptor.Descriptor, baseDir string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Descriptor: %s", descPath)))
	table := newPlainTable(false)
	table.Row("root path", d.Path)
	table.Row("classes", strconv.Itoa(d.NumClasses()))
	if d.Download != "" {
		table.Row("download", d.Download)
	}
	fmt.Println(table.Render())

	splits := newPlainTable(true)
	splits.Row("Split", "Kind", "Entry", "On disk")
	for _, split := range descriptor.Splits {
		entry := d.Splits[split]
		if entry == nil {
			splits.Row(string(split), "-", "not provided", "-")
			continue
		}
		splits.Row(string(split), entry.Kind.String(), entryText(entry), onDiskText(d, split, baseDir))
	}
	fmt.Println(splits.Render())
}

func printClasses(d *descriptor.Descriptor) {
	table := newPlainTable(true)
	table.Row("Index", "Name")
	for i, name := range d.Names {
		table.Row(strconv.Itoa(i), name)
	}
	fmt.Println(table.Render())
}

func entryText(entry *descriptor.SplitEntry) string {
	if entry.Kind == descriptor.SplitPathList {
		return fmt.Sprintf("%d paths", len(entry.Paths))
	}
	return entry.Path
}

// onDiskText reports the size of a directory split if it is present on disk,
// anchored at the descriptor file's directory.
func onDiskText(d *descriptor.Descriptor, split descriptor.Split, baseDir string) string {
	entry := must.M1(d.ResolveSplit(split))
	if entry == nil || entry.Kind != descriptor.SplitDirectory {
		return "-"
	}
	dir := entry.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	isDir, err := fsutil.IsDir(dir)
	if err != nil || !isDir {
		return "missing"
	}
	size, err := fsutil.DirSize(dir)
	if err != nil {
		return "?"
	}
	return humanize.IBytes(uint64(size))
}

func scanSplit(entry *descriptor.SplitEntry) {
	images := must.M1(scan.Images(entry))
	for _, img := range images {
		fmt.Println(img)
	}
	fmt.Printf("%s images\n", humanize.Comma(int64(len(images))))
}
