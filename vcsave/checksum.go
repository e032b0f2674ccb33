package vcsave

import "encoding/binary"

// ComputeChecksum returns the checksum for some save data, in the form it is
// stored in (ie, to be compared with StoredChecksum).
//
// The bytes are summed into a uint32, which wraps on overflow.  The sum is
// written out little-endian and read back big-endian.  Keep both steps: the
// game expects exactly this value.
//
func ComputeChecksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], sum)
	return binary.BigEndian.Uint32(le[:])
}

// ValidateChecksum compares the checksum of data against a stored value.  It
// returns a *ChecksumMismatchError (with the computed value) if they differ.
//
func ValidateChecksum(data []byte, stored uint32) error {
	computed := ComputeChecksum(data)
	if computed != stored {
		return &ChecksumMismatchError{Stored: stored, Computed: computed}
	}
	return nil
}

// StoredChecksum returns the checksum recorded in a whole save file.  The
// buffer must be FileSize bytes long.
//
func StoredChecksum(file []byte) uint32 {
	return binary.BigEndian.Uint32(file[ChecksumOffset:FileSize])
}

func writeChecksum(file []byte) uint32 {
	sum := ComputeChecksum(file[:ChecksumOffset])
	binary.BigEndian.PutUint32(file[ChecksumOffset:FileSize], sum)
	return sum
}
