package pdu

import (
	"errors"
	"unicode/utf16"
)

// ErrUnevenNumber happens when the number of octets (bytes) in the input is uneven.
var ErrUnevenNumber = errors.New("decode ucs2: uneven number of octets")

// EncodeUcs2 encodes the given UTF-8 text into UCS2 (UTF-16) encoding and returns the produced octets.
func EncodeUcs2(str string) []byte {
	buf := utf16.Encode([]rune(str))
	octets := make([]byte, 0, len(buf)*2)
	for _, n := range buf {
		octets = append(octets, byte(n&0xFF00>>8), byte(n&0x00FF))
	}
	return octets
}

// DecodeUcs2 decodes the given UCS2 (UTF-16) octet data into a UTF-8 encoded
// string. hasHeader is accepted for symmetry with the GSM-7 decoder's
// calling convention, where a user-data header shifts where the text
// starts; UCS-2 carries no such shift of its own (a UDH always occupies
// whole octets, which the caller strips before calling DecodeUcs2), so the
// flag has no effect here.
func DecodeUcs2(octets []byte, hasHeader bool) (str string, err error) {
	_ = hasHeader
	if len(octets)%2 != 0 {
		err = ErrUnevenNumber
		return
	}
	buf := make([]uint16, 0, len(octets)/2)
	for i := 0; i < len(octets); i += 2 {
		buf = append(buf, uint16(octets[i])<<8|uint16(octets[i+1]))
	}
	runes := utf16.Decode(buf)
	return string(runes), nil
}
