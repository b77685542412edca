package sms

// Encoding represents the encoding of message's text data.
type Encoding byte

// Encodings represent the possible encodings of message's text data.
var Encodings = struct {
	Gsm7Bit   Encoding
	UCS2      Encoding
	Gsm7Bit_2 Encoding
	Gsm7Bit_3 Encoding
}{
	0x00, 0x08, 0x11, 0x01,
}

// Class classifies a raw Data-Coding-Scheme octet into the alphabet it
// selects, per 3GPP TS 23.038 section 4: the general data coding group
// (bits 7-6 = 00) uses bits 3-2 to pick the alphabet, so any DCS in 0-3
// decodes as the GSM 7-bit default alphabet and any DCS in 8-11 as UCS-2;
// 4-7 (8-bit data) and 12-15 (message waiting indication group) are not
// decoded as text here and classify as Unsupported.
func (e Encoding) Class() Encoding {
	switch {
	case e <= 0x03:
		return Encodings.Gsm7Bit
	case e >= 0x08 && e <= 0x0B:
		return Encodings.UCS2
	default:
		return encodingUnsupported
	}
}

// encodingUnsupported is an internal sentinel Class returns for DCS ranges
// that carry no decodable text alphabet (4-7, 12-15).
const encodingUnsupported Encoding = 0xFF
