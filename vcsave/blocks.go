package vcsave

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// A Block records where one of the save's blocks lives.
//
type Block struct {
	Index int    // Offset of the block's first data byte (not of its size field)
	Size  uint32 // Length of the data, from the size field
	End   int    // Index + Size
}

// A BlockTable holds the locations of all the blocks in a save.
//
type BlockTable [NumBlocks]Block

// Last returns the final block of the table.
func (t *BlockTable) Last() Block { return t[NumBlocks-1] }

// LocateBlocks walks the chain of size fields at the front of a save and
// reports where each of the NumBlocks blocks is.
//
// The first size field is at offset 0.  Each later size field comes straight
// after the previous block's data, and each block's data starts 4 bytes after
// its size field.  The 4-byte spacing is a property of the file format.
//
// If a size field or a block would lie (even partly) beyond the end of data,
// LocateBlocks returns a *BlockTableError.
//
func LocateBlocks(data []byte) (BlockTable, error) {
	var table BlockTable
	offset := 0                           // where the next size field is
	blockStart := offset + blockPrefixLen // where the next block's data is

	for i := 0; i < NumBlocks; i++ {
		if blockStart > len(data) {
			return table, &BlockTableError{Block: i, Offset: offset, Len: len(data)}
		}
		size := binary.LittleEndian.Uint32(data[offset:blockStart])
		end := blockStart + int(size)
		if end > len(data) || end < blockStart {
			return table, &BlockTableError{Block: i, Offset: blockStart, Len: len(data)}
		}
		table[i] = Block{Index: blockStart, Size: size, End: end}

		offset += int(size) + blockPrefixLen
		blockStart = offset + blockPrefixLen
	}

	logrus.WithFields(logrus.Fields{
		"block1Size": table[1].Size,
		"lastEnd":    table.Last().End,
	}).Debug("located save blocks")
	return table, nil
}
