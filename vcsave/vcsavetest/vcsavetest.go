// Package vcsavetest builds synthetic save files for tests.
//
// Block contents come from a fixed pseudo-random sequence, so two saves built
// from the same sizes share the same bytes.
//
package vcsavetest

import (
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/c12h/vcsave-tools/vcsave"
)

// Layout details of the format which the vcsave package keeps to itself.
const (
	PrefixLen    = 4    // Size field in front of each block
	MarkerOffset = 0x58 // Where Retail and Steam saves differ
	MarkerLen    = 4
	RetailMarker = 0xE8

	PCBlock1Size      = 0x0708
	AndroidBlock1Size = 0x0764
	IOSBlock1Size     = 0x075C
)

// SteamMarker is what the Steam release stores at MarkerOffset.
var SteamMarker = [MarkerLen]byte{0xFD, 0x00, 0x00, 0x00}

// Sizes returns plausible block sizes for a Retail save.
func Sizes() []uint32 {
	sizes := make([]uint32, vcsave.NumBlocks)
	sizes[0] = 0x1A8
	sizes[1] = PCBlock1Size
	for i := 2; i < vcsave.NumBlocks; i++ {
		sizes[i] = 0x1000 + uint32(i)*0x10
	}
	return sizes
}

// Build lays out blocks of the given sizes, then zero padding up to a valid
// checksum.  The byte at MarkerOffset is set to marker.
func Build(sizes []uint32, marker byte) []byte {
	buf := make([]byte, vcsave.FileSize)
	rng := rand.New(rand.NewSource(1))
	off := 0
	for _, size := range sizes {
		binary.LittleEndian.PutUint32(buf[off:], size)
		rng.Read(buf[off+PrefixLen : off+PrefixLen+int(size)])
		off += PrefixLen + int(size)
	}
	binary.LittleEndian.PutUint32(buf[off:], uint32(vcsave.ChecksumOffset-off-PrefixLen))
	buf[MarkerOffset] = marker
	SetChecksum(buf)
	return buf
}

// SetChecksum stores the correct checksum at the end of a save.
func SetChecksum(buf []byte) {
	binary.BigEndian.PutUint32(buf[vcsave.ChecksumOffset:],
		vcsave.ComputeChecksum(buf[:vcsave.ChecksumOffset]))
}

// WithBlock1 returns a Retail-shaped save with another block 1 size and
// marker byte.
func WithBlock1(size uint32, marker byte) []byte {
	sizes := Sizes()
	sizes[1] = size
	return Build(sizes, marker)
}

// Retail returns a valid Retail save.
func Retail() []byte {
	return Build(Sizes(), RetailMarker)
}

// Steam returns the Steam save holding the same game as Retail().
func Steam() []byte {
	return SteamFrom(Retail())
}

// Android returns a valid save with the Android block 1 size.
func Android() []byte {
	return WithBlock1(AndroidBlock1Size, RetailMarker)
}

// IOS returns a valid save with the iOS block 1 size.
func IOS() []byte {
	return WithBlock1(IOSBlock1Size, RetailMarker)
}

// SteamFrom lays out a save the way the Steam release writes it: the marker
// sits at MarkerOffset inside a block 0 four bytes longer, and the padding is
// four bytes shorter.  Whatever was at MarkerOffset in base ends up just after
// the marker.  It panics if base has no room to give up.
//
func SteamFrom(base []byte) []byte {
	blocks, err := vcsave.LocateBlocks(base[:vcsave.ChecksumOffset])
	if err != nil {
		panic(err)
	}
	at := blocks.Last().End
	padding := binary.LittleEndian.Uint32(base[at:])
	if padding < MarkerLen {
		panic("vcsavetest: no padding to make room for the Steam marker")
	}

	buf := make([]byte, 0, vcsave.FileSize)
	buf = append(buf, base[:MarkerOffset]...)
	buf = append(buf, SteamMarker[:]...)
	buf = append(buf, base[MarkerOffset:vcsave.ChecksumOffset-MarkerLen]...)
	buf = append(buf, 0, 0, 0, 0)

	binary.LittleEndian.PutUint16(buf, binary.LittleEndian.Uint16(buf)+MarkerLen)
	binary.LittleEndian.PutUint32(buf[at+MarkerLen:], padding-MarkerLen)
	SetChecksum(buf)
	return buf
}

// WriteFile writes data into a new temporary directory under the given
// name, and returns its pathname.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
