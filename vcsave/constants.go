package vcsave

const (
	// FileSize is the size of every PC save file.
	FileSize = 0x31464

	// ChecksumOffset is where the big-endian checksum lives.  Everything
	// before it is save data.
	ChecksumOffset = 0x31460

	// NumBlocks is how many length-prefixed blocks the save data holds.
	NumBlocks = 23

	// blockPrefixLen is the length of the size field in front of each block.
	blockPrefixLen = 4
)

const (
	// Offset of the byte which tells Retail from Steam saves, and where the
	// Steam marker is inserted.
	markerOffset = 0x58
	markerLen    = 4

	// Possible values of the byte at markerOffset in PC saves.
	retailMarkerByte = 0xE8
	steamMarkerByte  = 0xFD
)

// steamMarker is what the Steam release stores at markerOffset.
var steamMarker = [markerLen]byte{steamMarkerByte, 0x00, 0x00, 0x00}

// Size of block 1 on each platform.
const (
	pcBlock1Size      = 0x0708
	androidBlock1Size = 0x0764
	iosBlock1Size     = 0x075C
)
