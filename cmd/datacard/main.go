// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

// datacard inspects dataset descriptor files.
//
//	datacard -summary data.yaml     # descriptor overview
//	datacard -classes data.yaml     # class index table
//	datacard -resolve val data.yaml # resolve one split, -scan lists its images
//	datacard -fetch data.yaml       # materialize the dataset root
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/datacard/datacard/descriptor"
	"github.com/datacard/datacard/fetch"
)

var (
	flagSummary = flag.Bool("summary", false, "Print an overview of the descriptor: root path, splits, class count, download reference. "+
		"This is the default when no other mode is selected.")
	flagClasses = flag.Bool("classes", false, "Print the class index table.")
	flagResolve = flag.String("resolve", "", "Resolve the given split (train, val or test) against the descriptor root and print it.")
	flagScan    = flag.Bool("scan", false, "With -resolve, enumerate the split's image files.")
	flagFetch   = flag.Bool("fetch", false, "Materialize the dataset root using the descriptor's download reference. "+
		"Only archive URLs are fetched; script references are reported, never run.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		klog.Errorf("Expected exactly one descriptor file. See 'datacard -help'.")
		os.Exit(1)
	}
	descPath := args[0]
	d, err := descriptor.LoadFile(descPath)
	if err != nil {
		klog.Errorf("%+v", err)
		os.Exit(1)
	}
	if !d.Usable() {
		klog.Warningf("Descriptor %q defines no splits: structurally valid, but unusable for training.", descPath)
	}

	if !*flagClasses && *flagResolve == "" && !*flagFetch {
		*flagSummary = true
	}
	// Relative roots are anchored at the descriptor file's directory.
	baseDir := filepath.Dir(descPath)

	if *flagFetch {
		must.M(fetch.Materialize(d, baseDir))
	}
	if *flagSummary {
		printSummary(descPath, d, baseDir)
	}
	if *flagClasses {
		printClasses(d)
	}
	if *flagResolve != "" {
		printResolved(d, descriptor.Split(*flagResolve), baseDir)
	}
}

func printResolved(d *descriptor.Descriptor, split descriptor.Split, baseDir string) {
	entry := must.M1(d.ResolveSplit(split))
	if entry == nil {
		fmt.Printf("split %q: not provided\n", split)
		return
	}
	switch entry.Kind {
	case descriptor.SplitPathList:
		fmt.Printf("split %q (%s):\n", split, entry.Kind)
		for _, p := range entry.Paths {
			fmt.Printf("  %s\n", p)
		}
	default:
		fmt.Printf("split %q (%s): %s\n", split, entry.Kind, entry.Path)
	}
	if *flagScan {
		scanSplit(anchorEntry(entry, baseDir))
	}
}

// anchorEntry re-anchors a resolved entry's relative paths at the descriptor
// file's directory, so scanning works regardless of the working directory.
func anchorEntry(entry *descriptor.SplitEntry, baseDir string) *descriptor.SplitEntry {
	anchor := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	anchored := &descriptor.SplitEntry{Kind: entry.Kind, Path: entry.Path}
	if entry.Path != "" {
		anchored.Path = anchor(entry.Path)
	}
	for _, p := range entry.Paths {
		anchored.Paths = append(anchored.Paths, anchor(p))
	}
	return anchored
}
