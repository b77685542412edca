package sms

// UserDataHeader is the decoded concatenated-SMS information element of a
// TP-UD header (3GPP TS 23.040 section 9.2.3.24.1). Tag identifies the
// message group (split_ref), TotalNumber is the part count (split_parts)
// and Sequence is this part's 1-based position (split_no).
type UserDataHeader struct {
	TotalNumber int
	Sequence    int
	Tag         int
}

// concatenated-SMS information element identifiers.
const (
	iei8BitRef  = 0x00
	iei16BitRef = 0x08
)

// ReadFrom decodes the concatenated-SMS information element from a TP-UD
// header. Both the 8-bit reference form (IEI 0x00, `05 00 03 REF PARTS SEQ`)
// and the 16-bit reference form (IEI 0x08, `06 08 04 REFHI REFLO PARTS SEQ`)
// are recognized; encoding always produces the 8-bit form.
func (udh *UserDataHeader) ReadFrom(octets []byte) error {
	if len(octets) < 1 {
		return ErrIncorrectUserDataHeaderLength
	}
	headerLen := int(octets[0]) + 1
	if headerLen > len(octets) || headerLen < 2 {
		return ErrIncorrectUserDataHeaderLength
	}
	h := octets[:headerLen]

	switch h[1] {
	case iei16BitRef:
		if len(h) < 7 {
			return ErrIncorrectUserDataHeaderLength
		}
		udh.Tag = int(h[3])<<8 | int(h[4])
		udh.TotalNumber = int(h[5])
		udh.Sequence = int(h[6])
	default: // iei8BitRef, and anything else we treat the same way
		if len(h) < 6 {
			return ErrIncorrectUserDataHeaderLength
		}
		udh.Tag = int(h[3])
		udh.TotalNumber = int(h[4])
		udh.Sequence = int(h[5])
	}

	return nil
}

// udhOctetLen reports how many leading octets of octets the user data
// header occupies (the UDHL byte plus its payload), or 0 if octets is empty.
func udhOctetLen(octets []byte) int {
	if len(octets) < 1 {
		return 0
	}
	n := int(octets[0]) + 1
	if n > len(octets) {
		return len(octets)
	}
	return n
}

// encodeUserDataHeader builds the 8-bit-reference concatenated-SMS
// information element for the given group.
func encodeUserDataHeader(ref byte, parts, seq int) []byte {
	return []byte{0x05, iei8BitRef, 0x03, ref, byte(parts), byte(seq)}
}
