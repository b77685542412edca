package forward

import (
	"errors"

	"github.com/dsamersoff/smsforward/internal/byteutil"
	"github.com/dsamersoff/smsforward/pdu"
	"github.com/dsamersoff/smsforward/sms"
)

// MsgTextLimit is the hard PDU-payload octet limit for a single-part body.
const MsgTextLimit = 140

// MsgTextLimitPerPart is the per-part encoded-octet budget once a body is
// split into concatenated SMS (the single-part limit minus the 6-octet UDH).
const MsgTextLimitPerPart = MsgTextLimit - 6

// SeptetCap is the GSM-7 septet-count ceiling applied by the single-part
// truncating encoder, distinct from MsgTextLimit's octet count.
const SeptetCap = 160

// ErrTooLong is returned when an encoded PDU's hex form would exceed the
// 2*255 character ceiling a modem will accept.
var ErrTooLong = errors.New("forward: pdu exceeds maximum hex length")

func encodedOctets(text string, gsm7 bool) int {
	if gsm7 {
		return len(pdu.Encode7Bit(text))
	}
	return len(pdu.EncodeUcs2(text))
}

func chooseEncoding(text string) (gsm7 bool, encoding sms.Encoding) {
	if pdu.Is7BitEncodable(text) {
		return true, sms.Encodings.Gsm7Bit
	}
	return false, sms.Encodings.UCS2
}

// splitByBudget greedily chunks text (by rune) into the largest prefixes
// whose encoded octet length does not exceed limit.
func splitByBudget(text string, gsm7 bool, limit int) []string {
	remaining := []rune(text)
	var parts []string
	for len(remaining) > 0 {
		lo, hi, best := 1, len(remaining), 1
		for lo <= hi {
			mid := (lo + hi) / 2
			if encodedOctets(string(remaining[:mid]), gsm7) <= limit {
				best = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		parts = append(parts, string(remaining[:best]))
		remaining = remaining[best:]
	}
	return parts
}

// createPDUMultipart builds the ordered sequence of Submit messages needed
// to deliver text to dest: a single non-UDH message if it fits MsgTextLimit
// encoded octets, otherwise a UDH-tagged concatenated-SMS sequence with
// split_ref = crc16(text) & 0xFF.
func createPDUMultipart(dest sms.PhoneNumber, text string) []sms.Message {
	gsm7, encoding := chooseEncoding(text)

	base := sms.Message{
		Type:     sms.MessageTypes.Submit,
		Encoding: encoding,
		Address:  dest,
		VPFormat: sms.ValidityPeriodFormats.FieldNotPresent,
	}

	if encodedOctets(text, gsm7) <= MsgTextLimit {
		base.Text = text
		return []sms.Message{base}
	}

	chunks := splitByBudget(text, gsm7, MsgTextLimitPerPart)
	ref := byte(byteutil.CRC16([]byte(text)) & 0xFF)
	msgs := make([]sms.Message, len(chunks))
	for i, chunk := range chunks {
		m := base
		m.Text = chunk
		m.UserDataStartsWithHeader = true
		m.SplitRef = ref
		m.SplitParts = len(chunks)
		m.SplitNo = i + 1
		msgs[i] = m
	}
	return msgs
}

// createPDUTruncated builds a single Submit message whose text is clipped to
// fit the single-part encoder: SeptetCap septets for GSM-7, or MsgTextLimit/2
// UCS-2 code units.
func createPDUTruncated(dest sms.PhoneNumber, text string) sms.Message {
	gsm7, encoding := chooseEncoding(text)

	runes := []rune(text)
	if gsm7 {
		for pdu.SeptetCount(string(runes)) > SeptetCap {
			runes = runes[:len(runes)-1]
		}
	} else if limit := MsgTextLimit / 2; len(runes) > limit {
		runes = runes[:limit]
	}

	return sms.Message{
		Type:     sms.MessageTypes.Submit,
		Encoding: encoding,
		Address:  dest,
		Text:     string(runes),
		VPFormat: sms.ValidityPeriodFormats.FieldNotPresent,
	}
}
