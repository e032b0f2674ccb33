package vcsave

import (
	"bytes"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// A SaveFile holds a PC save in memory, with details derived from it.
//
// Blocks, Variant and Checksum describe the buffer as it was loaded or last
// converted; they are recomputed whenever the buffer changes.
//
type SaveFile struct {
	Path     string     // Where the save was loaded from, if anywhere
	Checksum uint32     // The (valid) checksum of the buffer
	Variant  Variant    // Which release wrote the save
	Blocks   BlockTable // Where the blocks are
	data     []byte     // Always FileSize bytes
}

// Load reads a save file, checks it and works out its variant.
//
// The size of the file is checked before anything is read.  Load fails with a
// *SizeMismatchError, a *ChecksumMismatchError, a *BlockTableError or an
// *IOError; it never tries to repair a bad file.
//
func Load(path string) (*SaveFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioError("examine", path, err)
	}
	if info.IsDir() {
		return nil, ioError("read save from", path, errIsDirectory)
	}
	if info.Size() != FileSize {
		return nil, &SizeMismatchError{Path: path, Size: info.Size()}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return Parse(data, path)
}

// Parse does what Load does, for a save already in memory.  The SaveFile takes
// its own copy of data.  The path is used only in messages and may be empty.
//
func Parse(data []byte, path string) (*SaveFile, error) {
	if len(data) != FileSize {
		return nil, &SizeMismatchError{Path: path, Size: int64(len(data))}
	}
	s := &SaveFile{Path: path, data: bytes.Clone(data)}

	stored := StoredChecksum(s.data)
	if err := ValidateChecksum(s.data[:ChecksumOffset], stored); err != nil {
		mismatch := err.(*ChecksumMismatchError)
		mismatch.Path = path
		return nil, mismatch
	}
	if err := s.locate(); err != nil {
		return nil, err
	}
	s.Variant = Classify(&s.Blocks, s.data)

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"variant":  s.Variant,
		"checksum": s.Checksum,
	}).Debug("loaded save")
	return s, nil
}

// locate re-derives the block table and checksum from the buffer.
func (s *SaveFile) locate() error {
	blocks, err := LocateBlocks(s.data[:ChecksumOffset])
	if err != nil {
		return err
	}
	s.Blocks = blocks
	s.Checksum = StoredChecksum(s.data)
	return nil
}

// Bytes returns a copy of the whole save, checksum included.
func (s *SaveFile) Bytes() []byte {
	return bytes.Clone(s.data)
}

/*-------------------------------- Converting --------------------------------*/

// Convert turns a Retail save into a Steam save, or vice versa.
//
// Saves of any other variant give an *UnsupportedVariantError and are left
// unchanged.  On success the checksum and block table are brought up to date
// and Variant becomes the variant converted to; the caller still needs to
// Export the result (or use ConvertAndExport).
//
// Variant is not re-derived from the converted bytes.  A Steam save keeps
// whatever followed its marker, which need not be the Retail marker byte.
//
func (s *SaveFile) Convert() error {
	return s.ConvertTo(s.Variant.Opposite())
}

// ConvertTo is like Convert, but fails with a *ConversionNotSupportedError
// unless target is the variant Convert would produce.
//
func (s *SaveFile) ConvertTo(target Variant) error {
	if !s.Variant.Convertible() {
		return &UnsupportedVariantError{Variant: s.Variant}
	}
	if target != s.Variant.Opposite() {
		return &ConversionNotSupportedError{From: s.Variant, To: target}
	}

	converted, err := convertBuffer(s.data, &s.Blocks, s.Variant)
	if err != nil {
		return err
	}
	writeChecksum(converted)

	old := *s
	s.data = converted
	if err := s.locate(); err != nil {
		*s = old
		return err
	}
	s.Variant = target
	logrus.WithFields(logrus.Fields{
		"path": s.Path,
		"from": old.Variant,
		"to":   s.Variant,
	}).Info("converted save")
	return nil
}

// ConvertAndExport converts the save to the other PC variant and writes it to
// path, or back to s.Path if path is "".  Nothing is written if the
// conversion fails.
//
func (s *SaveFile) ConvertAndExport(path string) error {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		return ioError("export", "", errNoPath)
	}
	if err := s.Convert(); err != nil {
		return err
	}
	return s.Export(path)
}

/*-------------------------------- Exporting ---------------------------------*/

// WriteTo writes the whole save to w, after recomputing its checksum.
func (s *SaveFile) WriteTo(w io.Writer) (int64, error) {
	s.Checksum = writeChecksum(s.data)
	n, err := w.Write(s.data)
	return int64(n), err
}

// Export writes the save to a file, replacing any existing file.  The
// checksum is always recomputed first.
//
// The write is not atomic: a failure part way through can leave a truncated
// file, so callers should have a backup.
//
func (s *SaveFile) Export(path string) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return ioError("create", path, err)
	}
	if _, err := s.WriteTo(fh); err != nil {
		fh.Close()
		return ioError("write", path, err)
	}
	if err := fh.Close(); err != nil {
		return ioError("write", path, err)
	}
	logrus.WithField("path", path).Debug("exported save")
	return nil
}
