package byteutil

import "bytes"

// ReadLine yields the next line starting at pos: a slice ending at, but
// excluding, the next LF byte. When no further LF exists, newPos is -1 and
// the returned slice is the remaining tail up to (but excluding) a
// terminating NUL, if one is present. Calling ReadLine again with a
// negative pos is a no-op that returns (nil, -1), so callers can loop
// `for pos != -1 { line, pos = ReadLine(buf, pos) }` safely.
func ReadLine(buf []byte, pos int) (line []byte, newPos int) {
	if pos < 0 || pos >= len(buf) {
		return nil, -1
	}
	if idx := bytes.IndexByte(buf[pos:], '\n'); idx >= 0 {
		return buf[pos : pos+idx], pos + idx + 1
	}
	tail := buf[pos:]
	if nul := bytes.IndexByte(tail, 0); nul >= 0 {
		tail = tail[:nul]
	}
	return tail, -1
}
