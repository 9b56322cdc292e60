// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

// Package fetch downloads and extracts dataset archives.
//
// It is the acquisition side of a descriptor: package descriptor treats the
// "download" field as purely informational and never runs it; fetch is the
// explicit, opt-in component that acts on it. Downloads are resumable in the
// "if missing" sense only -- a file already on disk is trusted unless a
// checksum says otherwise.
package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/datacard/datacard/pkg/support/fsutil"
)

// Download fetches url and saves it at filePath, creating parent directories
// as needed. It returns the number of bytes written. With showProgress a
// progress bar is drawn to stderr.
func Download(url, filePath string, showProgress bool) (size int64, err error) {
	filePath, err = fsutil.ExpandTilde(filePath)
	if err != nil {
		return 0, err
	}
	if err = os.MkdirAll(path.Dir(filePath), 0777); err != nil {
		return 0, errors.Wrapf(err, "failed to create directory for %q", filePath)
	}
	file, err := os.Create(filePath)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create file %q", filePath)
	}
	defer func() { _ = file.Close() }()

	resp, err := http.Get(url)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to download %q", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("failed to download %q: %s", url, resp.Status)
	}

	var w io.Writer = file
	if showProgress {
		bar := newBytesBar(url, resp.ContentLength)
		defer func() { _ = bar.Close() }()
		w = io.MultiWriter(file, bar)
	}
	size, err = io.Copy(w, resp.Body)
	if err != nil {
		return 0, errors.Wrapf(err, "failed while downloading %q to %q", url, filePath)
	}
	if err = file.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to close %q", filePath)
	}
	klog.V(1).Infof("downloaded %s from %s", humanize.IBytes(uint64(size)), url)
	return size, nil
}

// DownloadIfMissing fetches url to filePath unless the file already exists.
// If checkHash is non-empty the file's sha256 must match, whether it was just
// downloaded or already on disk.
func DownloadIfMissing(url, filePath, checkHash string) error {
	filePath, err := fsutil.ExpandTilde(filePath)
	if err != nil {
		return err
	}
	exists, err := fsutil.Exists(filePath)
	if err != nil {
		return err
	}
	if !exists {
		klog.Infof("downloading %s ...", url)
		if _, err := Download(url, filePath, true); err != nil {
			return err
		}
	}
	if checkHash == "" {
		return nil
	}
	return ValidateChecksum(filePath, checkHash)
}

// ValidateChecksum verifies that the sha256 of the file at filePath matches
// checkHash. On mismatch the file is removed, so the next attempt re-downloads
// it, and an error is returned.
func ValidateChecksum(filePath, checkHash string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q for checksum", filePath)
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return errors.Wrapf(err, "failed to hash %q", filePath)
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))
	if fileHash != strings.ToLower(checkHash) {
		if removeErr := os.Remove(filePath); removeErr != nil {
			klog.Errorf("failed to remove %q after checksum mismatch, please remove it manually: %v", filePath, removeErr)
		}
		return errors.Errorf("file %q sha256 is %s, want %s; file removed", filePath, fileHash, checkHash)
	}
	return nil
}

// newBytesBar builds a byte-count progress bar for one download. A negative
// total (unknown Content-Length) falls back to a spinner.
func newBytesBar(url string, total int64) *progressbar.ProgressBar {
	description := path.Base(url)
	if total > 0 {
		description += " (" + humanize.IBytes(uint64(total)) + ")"
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeUnicode),
	)
}
