// Package byteutil provides the small byte- and string-level primitives the
// rest of the forwarder builds on: hex/binary conversion, CRC-16 content
// hashing, line splitting over a raw read buffer, quoted-field extraction
// from AT responses, and a lenient ISO-8601 timestamp parser.
package byteutil

import "strings"

const hexDigits = "0123456789ABCDEF"

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex2Bin decodes a hex string into bytes, case-insensitively. Decoding stops
// at the first byte that isn't a valid hex pair (or at a trailing lone
// nibble); the returned slice holds only the bytes fully decoded before that
// point, matching the tolerant parsing AT firmware output requires.
func Hex2Bin(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		hi, ok := nibble(s[i])
		if !ok {
			break
		}
		lo, ok := nibble(s[i+1])
		if !ok {
			break
		}
		out = append(out, hi<<4|lo)
	}
	return out
}

// Bin2Hex encodes bytes as an upper-case hex string.
func Bin2Hex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}

// CopyQuoted skips to the first double quote in src, then copies everything
// up to the next double quote. It returns the extracted value and the number
// of bytes of src consumed (including both quotes), so callers can keep
// scanning the remainder of a line such as `+CCLK: "25/02/09,20:12:47+12"`.
// If no closing quote is found, it returns everything after the opening
// quote and reports the whole string as consumed.
func CopyQuoted(src string) (value string, consumed int) {
	start := strings.IndexByte(src, '"')
	if start < 0 {
		return "", len(src)
	}
	rest := src[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return rest, len(src)
	}
	return rest[:end], start + end + 2
}
