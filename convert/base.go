package convert

import (
	"encoding/base64"
)

// Byte sequences travel as URL-safe base64 without padding.

func FormatBytes(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func ParseBytes(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
