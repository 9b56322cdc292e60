// Copyright 2026 The DataCard Authors. SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/datacard/datacard/pkg/support/fsutil"
)

// Untar extracts tarFile under baseDir. Gzip compression is detected from the
// ".gz"/".tgz" suffix. Entries escaping baseDir are rejected.
func Untar(tarFile, baseDir string) error {
	f, err := os.Open(tarFile)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive %q", tarFile)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(tarFile, ".gz") || strings.HasSuffix(tarFile, ".tgz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "archive %q is not valid gzip", tarFile)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read archive %q", tarFile)
		}
		target, err := safeJoin(baseDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0777); err != nil {
				return errors.Wrapf(err, "failed to create directory %q", target)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, header.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			// Symlinks and devices in dataset archives are not expected; skip.
		}
	}
}

// Unzip extracts zipFile under baseDir. Entries escaping baseDir are rejected.
func Unzip(zipFile, baseDir string) error {
	zr, err := zip.OpenReader(zipFile)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive %q", zipFile)
	}
	defer func() { _ = zr.Close() }()

	for _, entry := range zr.File {
		target, err := safeJoin(baseDir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0777); err != nil {
				return errors.Wrapf(err, "failed to create directory %q", target)
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return errors.Wrapf(err, "failed to read %q from %q", entry.Name, zipFile)
		}
		err = writeEntry(target, rc, entry.FileInfo().Mode())
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// DownloadAndUntarIfMissing downloads a tar archive and extracts it under
// baseDir, skipping whatever already exists: nothing happens if targetDir is
// present, and a previously downloaded archive is reused.
func DownloadAndUntarIfMissing(url, baseDir, tarFile, targetDir, checkHash string) error {
	return downloadAndExtractIfMissing(url, baseDir, tarFile, targetDir, checkHash, Untar)
}

// DownloadAndUnzipIfMissing is DownloadAndUntarIfMissing for zip archives.
func DownloadAndUnzipIfMissing(url, baseDir, zipFile, targetDir, checkHash string) error {
	return downloadAndExtractIfMissing(url, baseDir, zipFile, targetDir, checkHash, Unzip)
}

func downloadAndExtractIfMissing(url, baseDir, archive, targetDir, checkHash string,
	extract func(archive, baseDir string) error) error {
	baseDir, err := fsutil.ExpandTilde(baseDir)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(baseDir, archive)
	}
	if !filepath.IsAbs(targetDir) {
		targetDir = filepath.Join(baseDir, targetDir)
	}
	exists, err := fsutil.Exists(targetDir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := DownloadIfMissing(url, archive, checkHash); err != nil {
		return err
	}
	if err := extract(archive, baseDir); err != nil {
		return err
	}
	exists, err = fsutil.Exists(targetDir)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("downloaded %q and extracted %q, but %q still does not exist", url, archive, targetDir)
	}
	return nil
}

// safeJoin joins an archive entry name onto baseDir and rejects entries that
// would escape it ("zip slip").
func safeJoin(baseDir, name string) (string, error) {
	target := filepath.Join(baseDir, filepath.FromSlash(name))
	base := filepath.Clean(baseDir)
	if target != base && !strings.HasPrefix(target, base+string(os.PathSeparator)) {
		return "", errors.Errorf("archive entry %q escapes extraction directory %q", name, baseDir)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0777); err != nil {
		return errors.Wrapf(err, "failed to create directory for %q", target)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", target)
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %q", target)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", target)
}
