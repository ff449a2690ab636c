package config

import (
	"fmt"
)

func GetVersion() []byte {
	return []byte{0x01, 0x00, 0x00}
}

func GetVersionString() string {
	return FormatVersion(GetVersion())
}

func FormatVersion(version []byte) string {
	switch {
	case len(version) < 3:
		return "unknown"
	case len(version) == 3:
		return fmt.Sprintf(
			"%d.%d.%d",
			version[0], version[1], version[2],
		)
	default:
		return fmt.Sprintf(
			"%d.%d.%d-p%d",
			version[0], version[1], version[2], version[3],
		)
	}
}
