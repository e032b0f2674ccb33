package vcsave

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// convertBuffer returns a copy of a Retail or Steam save converted to the
// other variant.  The new buffer's checksum is stale; callers must rewrite it.
// On error, nothing has been changed.
//
// To convert a Retail save to Steam:
//  1. insert FD 00 00 00 at offset 0x58, moving everything after it 4 bytes
//     to the right;
//  2. add 4 to the 16-bit size of block 0, which now holds the marker;
//  3. subtract 4 from the size field that follows the last block (which is
//     now 4 bytes further along), since the padding it describes must shrink;
//  4. drop the last 4 bytes (the old checksum) to restore the file size.
// Converting Steam to Retail does the reverse, padding the end with zeros.
//
func convertBuffer(data []byte, blocks *BlockTable, from Variant) ([]byte, error) {
	if len(data) != FileSize {
		return nil, &SizeMismatchError{Size: int64(len(data))}
	}
	if blocks[0].End < markerOffset+markerLen {
		return nil, &BlockTableError{Block: 0, Offset: markerOffset, Len: blocks[0].End}
	}

	var out []byte
	var anchor int
	switch from {
	case Retail:
		out = make([]byte, 0, FileSize+markerLen)
		out = append(out, data[:markerOffset]...)
		out = append(out, steamMarker[:]...)
		out = append(out, data[markerOffset:]...)
		anchor = blocks.Last().End + markerLen

	case Steam:
		out = make([]byte, 0, FileSize)
		out = append(out, data[:markerOffset]...)
		out = append(out, data[markerOffset+markerLen:]...)
		// The old checksum becomes the end of the padding.
		clear(out[ChecksumOffset-markerLen:])
		anchor = blocks.Last().End - markerLen

	default:
		return nil, &UnsupportedVariantError{Variant: from}
	}

	if anchor < blocks[0].End || anchor+blockPrefixLen > ChecksumOffset {
		return nil, &BlockTableError{Block: NumBlocks, Offset: anchor, Len: ChecksumOffset}
	}
	block0Size := binary.LittleEndian.Uint16(out[0:2])
	paddingSize := binary.LittleEndian.Uint32(out[anchor : anchor+blockPrefixLen])

	if from == Retail {
		if paddingSize < markerLen {
			return nil, &BlockTableError{Block: NumBlocks, Offset: anchor, Len: ChecksumOffset}
		}
		block0Size += markerLen
		paddingSize -= markerLen
		out = out[:FileSize]
	} else {
		block0Size -= markerLen
		paddingSize += markerLen
		out = append(out, 0, 0, 0, 0)
	}
	binary.LittleEndian.PutUint16(out[0:2], block0Size)
	binary.LittleEndian.PutUint32(out[anchor:anchor+blockPrefixLen], paddingSize)

	logrus.WithFields(logrus.Fields{
		"from":        from,
		"to":          from.Opposite(),
		"block0Size":  block0Size,
		"paddingAt":   anchor,
		"paddingSize": paddingSize,
	}).Debug("converted save buffer")
	return out, nil
}
