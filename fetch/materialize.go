// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/datacard/datacard/descriptor"
	"github.com/datacard/datacard/pkg/support/fsutil"
)

// Materialize makes the descriptor's root path exist, acting on its download
// reference. Relative root paths are anchored at baseDir, conventionally the
// directory holding the descriptor file.
//
// Only archive URLs are acted on: the archive is downloaded next to the root
// and extracted so the root appears. Script references (the other thing a
// download field may hold) are never executed; Materialize reports them back
// to the caller instead.
func Materialize(d *descriptor.Descriptor, baseDir string) error {
	baseDir, err := fsutil.ExpandTilde(baseDir)
	if err != nil {
		return err
	}
	root := d.Path
	if !filepath.IsAbs(root) {
		root = filepath.Join(baseDir, root)
	}
	exists, err := fsutil.Exists(root)
	if err != nil {
		return err
	}
	if exists {
		klog.V(1).Infof("dataset root %q already exists, nothing to fetch", root)
		return nil
	}
	if d.Download == "" {
		return errors.Errorf("dataset root %q does not exist and the descriptor has no download reference", root)
	}
	if !isURL(d.Download) {
		return errors.Errorf("download reference %q is a script, not a URL; refusing to execute it, run it manually", d.Download)
	}

	archive := path.Base(strippedURLPath(d.Download))
	parent := filepath.Dir(root)
	switch {
	case strings.HasSuffix(archive, ".zip"):
		return DownloadAndUnzipIfMissing(d.Download, parent, archive, root, "")
	case strings.HasSuffix(archive, ".tar"), strings.HasSuffix(archive, ".tar.gz"),
		strings.HasSuffix(archive, ".tgz"):
		return DownloadAndUntarIfMissing(d.Download, parent, archive, root, "")
	default:
		// Not an archive: a single file dataset. Download it under the root.
		_, err := Download(d.Download, filepath.Join(root, archive), true)
		return err
	}
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// strippedURLPath returns the path component of an URL, so query strings do
// not leak into the local archive name.
func strippedURLPath(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.Path
}
