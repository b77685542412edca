package pdu

import (
	"errors"
	"fmt"
	"strings"
)

// Esc is the escape septet (3GPP TS 23.038) that introduces a character from
// the extension table rather than the default alphabet.
const Esc byte = 0x1B

// ErrIncompleteEscape is returned by Decode7Bit when the septet stream ends
// right after an escape septet, with no extension character to pair it with.
var ErrIncompleteEscape = errors.New("pdu: incomplete 7bit escape sequence")

// gsm7Alphabet is the GSM 7-bit default alphabet (3GPP TS 23.038 section 6.2.1),
// indexed by septet value.
var gsm7Alphabet = [128]rune{
	'@', '£', '$', '¥', 'è', 'é', 'ù', 'ì', 'ò', 'Ç', '\n', 'Ø', 'ø', '\r', 'Å', 'å',
	'Δ', '_', 'Φ', 'Γ', 'Λ', 'Ω', 'Π', 'Ψ', 'Σ', 'Θ', 'Ξ', 0, 'Æ', 'æ', 'ß', 'É',
	' ', '!', '"', '#', '¤', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'¡', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', 'Ä', 'Ö', 'Ñ', 'Ü', '§',
	'¿', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'ä', 'ö', 'ñ', 'ü', 'à',
}

// gsm7Ext is the extension table, reached by prefixing a septet with Esc.
var gsm7Ext = map[byte]rune{
	0x0A: '\f',
	0x14: '^',
	0x28: '{',
	0x29: '}',
	0x2F: '\\',
	0x3C: '[',
	0x3D: '~',
	0x3E: ']',
	0x40: '|',
	0x65: '€',
}

var (
	gsm7AlphabetRev = make(map[rune]byte, len(gsm7Alphabet))
	gsm7ExtRev      = make(map[rune]byte, len(gsm7Ext))
)

func init() {
	for septet, r := range gsm7Alphabet {
		if r == 0 && septet != 0 {
			continue // 0x1B (Esc) is not itself a printable character
		}
		gsm7AlphabetRev[r] = byte(septet)
	}
	for septet, r := range gsm7Ext {
		gsm7ExtRev[r] = septet
	}
}

// fallbackSeptet is substituted for any rune that the default alphabet and
// the extension table cannot represent, the GSM-7 septet for '?'.
const fallbackSeptet = 0x3F

// crSeptet is the GSM-7 septet for CR, used as end-of-message padding.
const crSeptet = 0x0D

// septetsFor expands text into the sequence of raw (unpacked) septets that
// Encode7Bit would pack, before 7-to-8 bit packing is applied.
func septetsFor(text string) []byte {
	septets := make([]byte, 0, len(text))
	for _, r := range text {
		if s, ok := gsm7AlphabetRev[r]; ok {
			septets = append(septets, s)
			continue
		}
		if s, ok := gsm7ExtRev[r]; ok {
			septets = append(septets, Esc, s)
			continue
		}
		septets = append(septets, fallbackSeptet)
	}
	return septets
}

// SeptetCount returns the number of septets text would occupy once encoded,
// counting extension-table characters as two septets (escape + code).
func SeptetCount(text string) int {
	return len(septetsFor(text))
}

// SeptetsFor expands text into the sequence of raw (unpacked) septets that
// Encode7Bit would pack, before 7-to-8 bit packing is applied. Exported so
// callers can splice a filler run in front (e.g. to align a user data
// header onto a septet boundary) before packing.
func SeptetsFor(text string) []byte {
	return septetsFor(text)
}

// PackSeptets packs raw septet values (as returned by SeptetsFor or Septets)
// into an octet stream, 8 septets becoming 7 octets.
func PackSeptets(septets []byte) []byte {
	return pack7Bit(septets)
}

// Is7BitEncodable reports whether every rune of text can be represented
// (possibly via the extension table) in the GSM 7-bit default alphabet.
func Is7BitEncodable(text string) bool {
	for _, r := range text {
		if _, ok := gsm7AlphabetRev[r]; ok {
			continue
		}
		if _, ok := gsm7ExtRev[r]; ok {
			continue
		}
		return false
	}
	return true
}

// Encode7Bit packs text into GSM 7-bit default-alphabet octets as described
// in 3GPP TS 23.038 section 6.1.2.1. Characters outside the default alphabet
// and its extension table are substituted with '?'. When the last octet would
// hold 7 spare bits they carry a CR septet, and a text ending with CR on an
// octet boundary gets a second CR (3GPP TS 23.038 section 6.1.2.3.1).
func Encode7Bit(text string) []byte {
	septets := septetsFor(text)
	switch n := len(septets); {
	case n%8 == 7:
		septets = append(septets, crSeptet)
	case n > 0 && n%8 == 0 && septets[n-1] == crSeptet:
		septets = append(septets, crSeptet)
	}
	return pack7Bit(septets)
}

// Decode7Bit unpacks GSM 7-bit default-alphabet octets into a UTF-8 string,
// dropping a final CR septet that Encode7Bit's padding rule accounts for.
func Decode7Bit(octets []byte) (string, error) {
	septets := unpack7Bit(octets)
	if n := len(septets); n > 0 && septets[n-1] == crSeptet {
		if len(octets)%7 == 0 || (len(octets)%7 == 1 && n > 1 && septets[n-2] == crSeptet) {
			septets = septets[:n-1]
		}
	}
	return DecodeSeptets(septets)
}

// Septets unpacks GSM 7-bit packed octets into their raw septet values,
// without interpreting them through the default alphabet or its escape
// table. Useful when a leading run of septets (e.g. a user data header's
// filler septet) must be discarded before decoding text.
func Septets(octets []byte) []byte {
	return unpack7Bit(octets)
}

// DecodeSeptets renders raw septet values (as returned by Septets) into a
// UTF-8 string, applying the default alphabet and its escape table.
func DecodeSeptets(septets []byte) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(septets); i++ {
		s := septets[i]
		if s == Esc {
			i++
			if i >= len(septets) {
				return sb.String(), ErrIncompleteEscape
			}
			if r, ok := gsm7Ext[septets[i]]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteRune('?')
			}
			continue
		}
		if int(s) < len(gsm7Alphabet) {
			sb.WriteRune(gsm7Alphabet[s])
		} else {
			sb.WriteRune('?')
		}
	}
	return sb.String(), nil
}

// pack7Bit packs septets (each holding a value 0-127) into an octet stream,
// 8 septets becoming 7 octets, per 3GPP TS 23.038 section 6.1.2.1.
func pack7Bit(septets []byte) []byte {
	if len(septets) == 0 {
		return nil
	}
	packed := make([]byte, 0, (len(septets)*7+7)/8)
	var residual byte
	var rbits uint
	for _, s := range septets {
		if rbits == 0 {
			residual = s
			rbits = 7
			continue
		}
		packed = append(packed, (residual|s<<rbits)&0xFF)
		residual = s >> (8 - rbits)
		rbits--
	}
	if rbits != 0 {
		packed = append(packed, residual)
	}
	return packed
}

// unpack7Bit is the inverse of pack7Bit.
func unpack7Bit(octets []byte) []byte {
	if len(octets) == 0 {
		return nil
	}
	septets := make([]byte, 0, (len(octets)*8+6)/7)
	var residual byte
	var rbits uint
	for _, o := range octets {
		septets = append(septets, (residual|o<<rbits)&0x7F)
		if rbits == 6 {
			septets = append(septets, o>>1)
			rbits = 0
			residual = 0
			continue
		}
		rbits++
		residual = o >> (8 - rbits)
	}
	return septets
}

// displayPack renders packed septet octets as a binary string, one octet per
// line, for debugging GSM-7 packing issues by hand.
func displayPack(octets []byte) string {
	var sb strings.Builder
	for _, o := range octets {
		fmt.Fprintf(&sb, "%08b\n", o)
	}
	return sb.String()
}
