package vcsave

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBackupSuffix is appended to a save's pathname to name its backup.
const DefaultBackupSuffix = ".bak"

// compressedSuffix is appended (after the backup suffix) to compressed backups.
const compressedSuffix = ".lz4"

// BackupOptions say how backups are named and stored.
//
type BackupOptions struct {
	Suffix   string // Appended to the save's pathname; "" means DefaultBackupSuffix
	Compress bool   // Store the backup as an LZ4 frame
}

func (o BackupOptions) suffix() string {
	if o.Suffix == "" {
		return DefaultBackupSuffix
	}
	return o.Suffix
}

// BackupPath returns the pathname WriteBackup would use for a save.
func BackupPath(savePath string, opts BackupOptions) string {
	p := savePath + opts.suffix()
	if opts.Compress {
		p += compressedSuffix
	}
	return p
}

// WriteBackup copies a save file to its backup pathname, overwriting any
// previous backup, and returns that pathname.
//
func WriteBackup(savePath string, opts BackupOptions) (string, error) {
	info, err := os.Stat(savePath)
	if err != nil {
		return "", ioError("examine", savePath, err)
	}
	if !info.Mode().IsRegular() {
		return "", ioError("back up", savePath, errIsDirectory)
	}

	src, err := os.Open(savePath)
	if err != nil {
		return "", ioError("open", savePath, err)
	}
	defer src.Close()

	backupPath := BackupPath(savePath, opts)
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", ioError("create", backupPath, err)
	}

	if err := copyBackup(dst, src, opts.Compress); err != nil {
		dst.Close()
		return "", errors.Wrapf(err, "back up %q to %q", savePath, backupPath)
	}
	if err := dst.Close(); err != nil {
		return "", ioError("write", backupPath, err)
	}

	logrus.WithFields(logrus.Fields{
		"save":       savePath,
		"backup":     backupPath,
		"compressed": opts.Compress,
	}).Debug("wrote backup")
	return backupPath, nil
}

func copyBackup(dst io.Writer, src io.Reader, compress bool) error {
	if !compress {
		_, err := io.Copy(dst, src)
		return err
	}
	zw := lz4.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		return errors.Wrap(err, "compress")
	}
	return errors.Wrap(zw.Close(), "finish lz4 frame")
}

// ReadBackup reads a backup into memory, decompressing it if its name ends in
// ".lz4", and checks that it is a valid save.
//
func ReadBackup(backupPath string) (*SaveFile, error) {
	fh, err := os.Open(backupPath)
	if err != nil {
		return nil, ioError("open", backupPath, err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(backupPath, compressedSuffix) {
		r = lz4.NewReader(fh)
	}
	// One extra byte lets Parse report an over-long backup.
	data, err := io.ReadAll(io.LimitReader(r, FileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read backup %q", backupPath)
	}
	return Parse(data, backupPath)
}

// RestoreBackup replaces a save with the contents of its backup, which must be
// a valid save itself.
//
func RestoreBackup(backupPath, savePath string) error {
	save, err := ReadBackup(backupPath)
	if err != nil {
		return err
	}
	if err := save.Export(savePath); err != nil {
		return errors.Wrapf(err, "restore %q", backupPath)
	}
	logrus.WithFields(logrus.Fields{
		"save":    savePath,
		"backup":  backupPath,
		"variant": save.Variant,
	}).Info("restored backup")
	return nil
}

// FindBackup looks for an existing backup of a save, plain or compressed, and
// reports its pathname and when it was last modified.  If both kinds exist,
// the newer is used.  If there is no backup, the error satisfies
// errors.Is(err, os.ErrNotExist).
//
func FindBackup(savePath string, opts BackupOptions) (string, time.Time, error) {
	var found string
	var modTime time.Time
	for _, compress := range []bool{false, true} {
		p := BackupPath(savePath, BackupOptions{Suffix: opts.Suffix, Compress: compress})
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", time.Time{}, ioError("examine", p, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if found == "" || info.ModTime().After(modTime) {
			found, modTime = p, info.ModTime()
		}
	}
	if found == "" {
		return "", time.Time{}, ioError("find backup of", savePath, os.ErrNotExist)
	}
	return found, modTime, nil
}
