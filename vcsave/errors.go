package vcsave

import (
	"fmt"

	"github.com/c12h/errs"
)

/*------------- cannot is a convenience wrapper for errs.Cannot --------------*/

func cannot(verb, adjective, noun string, baseError error) error {
	return errs.Cannot(verb, adjective, noun, true, "", baseError)
}

/*--------------------------------- IOError ----------------------------------*/

// An IOError reports a failure to read, write or examine a file.
//
type IOError struct {
	Verb    string // What we were trying to do, eg "read"
	Path    string // The file involved
	BaseErr error
}

func (e *IOError) Error() string {
	return cannot(e.Verb, "", e.Path, e.BaseErr).Error()
}
func (e *IOError) Unwrap() error {
	return e.BaseErr
}

func ioError(verb, path string, err error) *IOError {
	return &IOError{
		Verb:    verb,
		Path:    path,
		BaseErr: err}
}

/*---------------------------- SizeMismatchError -----------------------------*/

// A SizeMismatchError means a file cannot be a PC save because it is not
// exactly FileSize bytes long.
//
type SizeMismatchError struct {
	Path string
	Size int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf(
		"%q is 0x%04X bytes long; every Vice City save is 0x%04X bytes",
		e.Path, e.Size, FileSize)
}

/*-------------------------- ChecksumMismatchError ---------------------------*/

// A ChecksumMismatchError means the checksum stored in a save does not match
// its contents.  The file may have been damaged, or edited by hand.
//
type ChecksumMismatchError struct {
	Path     string
	Stored   uint32 // The value found at ChecksumOffset
	Computed uint32 // What the checksum should be
}

func (e *ChecksumMismatchError) Error() string {
	text := "checksum failed"
	if e.Path != "" {
		text = fmt.Sprintf("%q failed its checksum", e.Path)
	}
	return fmt.Sprintf("%s: stored %08X, computed %08X",
		text, e.Stored, e.Computed)
}

/*------------------------- UnsupportedVariantError --------------------------*/

// An UnsupportedVariantError means a save was recognized (or not) as a variant
// that cannot be converted.
//
type UnsupportedVariantError struct {
	Variant Variant
}

func (e *UnsupportedVariantError) Error() string {
	if e.Variant == Unknown {
		return "cannot determine the save variant; format not supported"
	}
	return fmt.Sprintf("%s saves are not supported", e.Variant)
}

/*----------------------- ConversionNotSupportedError ------------------------*/

// A ConversionNotSupportedError reports a request for a conversion which does
// not exist, such as Steam to Steam.
//
type ConversionNotSupportedError struct {
	From, To Variant
}

func (e *ConversionNotSupportedError) Error() string {
	return fmt.Sprintf("cannot convert a %s save to %s", e.From, e.To)
}

/*----------------------------- BlockTableError ------------------------------*/

// A BlockTableError means the chain of block sizes runs off the end of the
// buffer.  There is no way to carry on once that happens.
//
type BlockTableError struct {
	Block  int // Which block (0-based) was being located
	Offset int // The offset of the field or data that overran
	Len    int // The length of the buffer
}

func (e *BlockTableError) Error() string {
	return fmt.Sprintf("block %d overruns the save data (offset 0x%X, length 0x%X)",
		e.Block, e.Offset, e.Len)
}

var (
	errIsDirectory = fmt.Errorf("is a directory")
	errNoPath      = fmt.Errorf("no path given")
)
