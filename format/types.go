package format

import "fmt"

type (
	PropertyType    uint8
	CompressionType uint8
)

const (
	// Wire values for the 2-bit property tag column. These are part of the
	// payload format and must not be reordered.
	TypeString  PropertyType = 0x0
	TypeBool    PropertyType = 0x1
	TypeInteger PropertyType = 0x2
	TypeArray   PropertyType = 0x3

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// PropertyTypeFromBits validates a decoded 2-bit tag.
// The bit width makes values above 3 unreachable, but corrupted payloads are
// cheaper to reject here than deeper in the decode path.
func PropertyTypeFromBits(bits uint8) (PropertyType, bool) {
	if bits > uint8(TypeArray) {
		return 0, false
	}

	return PropertyType(bits), true
}

func (p PropertyType) String() string {
	switch p {
	case TypeString:
		return "String"
	case TypeBool:
		return "Bool"
	case TypeInteger:
		return "Integer"
	case TypeArray:
		return "Array"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a user-facing name (as accepted by the CLI) to a
// CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
