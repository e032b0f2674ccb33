package vcsave

import (
	"fmt"
	"strings"
)

// A Variant says which release of the game wrote a save.
type Variant int

const (
	Unknown Variant = iota
	Retail
	Steam
	Android
	IOS
)

var variantNames = [...]string{
	Unknown: "unknown",
	Retail:  "Retail",
	Steam:   "Steam",
	Android: "Android",
	IOS:     "iOS",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Convertible reports whether saves of this variant can be converted.
func (v Variant) Convertible() bool {
	return v == Retail || v == Steam
}

// Opposite returns the variant a PC save converts to, or Unknown.
func (v Variant) Opposite() Variant {
	switch v {
	case Retail:
		return Steam
	case Steam:
		return Retail
	}
	return Unknown
}

// ParseVariant turns a name such as "steam" or "Retail" into a Variant,
// ignoring case.
//
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if strings.EqualFold(name, n) {
			return Variant(v), nil
		}
	}
	return Unknown, fmt.Errorf("unknown save variant %q", name)
}

// Classify works out which variant wrote a save, from the size of block 1 and
// (for PC saves) the byte at offset 0x58.
//
func Classify(blocks *BlockTable, data []byte) Variant {
	switch blocks[1].Size {
	case pcBlock1Size:
		switch data[markerOffset] {
		case retailMarkerByte:
			return Retail
		case steamMarkerByte:
			return Steam
		default:
			return Unknown
		}
	case androidBlock1Size:
		return Android
	case iosBlock1Size:
		return IOS
	default:
		return Unknown
	}
}
