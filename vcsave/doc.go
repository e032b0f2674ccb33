// Package vcsave reads, checks and converts save files for the PC versions of
// GTA: Vice City.
//
//
// Save File Layout
//
// Every PC save file is exactly 0x31464 bytes long.  The first 0x31460 bytes
// hold the save data proper; the last four hold a checksum.
//
// The save data is a chain of 23 blocks.  Each block is preceded by a 4-byte
// little-endian length, so the layout looks like
//	+0x0000  size of block 0 (u32 LE)
//	+0x0004  block 0 data ...
//	         size of block 1 (u32 LE)
//	         block 1 data ...
//	         ...
//	         size of the padding that runs up to the checksum
//	+0x31460 checksum
// LocateBlocks walks this chain from the front; nothing in the file records
// the block offsets directly.
//
//
// Checksums
//
// The checksum is the low 32 bits of the sum of all save-data bytes.  The sum
// is serialized little-endian and those bytes are then read back big-endian,
// which is the value stored (big-endian) at offset 0x31460.
//
//
// Variants
//
// The Retail (disc) and Steam releases write almost the same file.  The Steam
// release adds a 4-byte marker, FD 00 00 00, at offset 0x58 inside block 0 and
// shortens the trailing padding by 4 bytes to keep the file size fixed.
// Mobile saves have a differently sized block 1; they are recognized but
// cannot be converted.
//
package vcsave // import "github.com/c12h/vcsave-tools/vcsave"
