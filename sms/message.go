// Package sms allows to encode and decode SMS messages into/from PDU format as described in 3GPP TS 23.040.
package sms

import (
	"bytes"
	"io"

	"github.com/dsamersoff/smsforward/pdu"
)

// Message represents an SMS message, including some advanced fields. This
// is a user-friendly high-level representation that should be used around.
// Complies with 3GPP TS 23.040.
type Message struct {
	Type                 MessageType
	Encoding             Encoding
	VP                   ValidityPeriod
	VPFormat             ValidityPeriodFormat
	ServiceCenterTime    Timestamp
	ServiceCenterAddress PhoneNumber
	Address              PhoneNumber
	Text                 string

	// Advanced
	MessageReference         byte
	ReplyPathExists          bool
	UserDataStartsWithHeader bool
	StatusReportIndication   bool
	StatusReportRequest      bool
	MoreMessagesToSend       bool
	LoopPrevention           bool
	RejectDuplicates         bool

	// Concatenated-SMS fields, populated from the UDH on decode. SplitNo is
	// 1-based; 0 means the message isn't part of a multipart group.
	SplitRef   byte
	SplitParts int
	SplitNo    int
}

func blocks(n, block int) int {
	if n%block == 0 {
		return n / block
	}
	return n/block + 1
}

// PDU serializes the message into octets ready to be transferred.
// Returns the number of TPDU bytes in the produced PDU.
// Complies with 3GPP TS 23.040.
func (s *Message) PDU() (int, []byte, error) {
	var buf bytes.Buffer
	if len(s.ServiceCenterAddress) < 1 {
		buf.WriteByte(0x00) // SMSC info length
	} else {
		_, octets, err := s.ServiceCenterAddress.PDU()
		if err != nil {
			return 0, nil, err
		}
		buf.WriteByte(byte(len(octets)))
		buf.Write(octets)
	}

	var udh []byte
	if s.UserDataStartsWithHeader {
		seq := s.SplitNo
		if seq == 0 {
			seq = 1
		}
		parts := s.SplitParts
		if parts == 0 {
			parts = 1
		}
		udh = encodeUserDataHeader(s.SplitRef, parts, seq)
	}

	switch s.Type {
	case MessageTypes.Deliver:
		var sms smsDeliver
		sms.MessageTypeIndicator = byte(s.Type)
		sms.MoreMessagesToSend = s.MoreMessagesToSend
		sms.LoopPrevention = s.LoopPrevention
		sms.ReplyPath = s.ReplyPathExists
		sms.UserDataHeaderIndicator = s.UserDataStartsWithHeader
		sms.StatusReportIndication = s.StatusReportIndication

		addrLen, addr, err := s.Address.PDU()
		if err != nil {
			return 0, nil, err
		}
		var addrBuf bytes.Buffer
		addrBuf.WriteByte(byte(addrLen))
		addrBuf.Write(addr)
		sms.OriginatingAddress = addrBuf.Bytes()

		sms.ProtocolIdentifier = 0x00 // Short Message Type 0
		sms.DataCodingScheme = byte(s.Encoding)
		sms.ServiceCentreTimestamp = s.ServiceCenterTime.PDU()

		userData, dataLen, err := s.encodeUserData(udh)
		if err != nil {
			return 0, nil, err
		}
		sms.UserData = userData
		sms.UserDataLength = dataLen

		n, err := buf.Write(sms.Bytes())
		if err != nil {
			return 0, nil, err
		}
		return n, buf.Bytes(), nil
	case MessageTypes.Submit:
		var sms smsSubmit
		sms.MessageTypeIndicator = byte(s.Type)
		sms.RejectDuplicates = s.RejectDuplicates
		sms.ValidityPeriodFormat = byte(s.VPFormat)
		sms.ReplyPath = s.ReplyPathExists
		sms.UserDataHeaderIndicator = s.UserDataStartsWithHeader
		sms.StatusReportRequest = s.StatusReportRequest
		sms.MessageReference = s.MessageReference

		addrLen, addr, err := s.Address.PDU()
		if err != nil {
			return 0, nil, err
		}
		var addrBuf bytes.Buffer
		addrBuf.WriteByte(byte(addrLen))
		addrBuf.Write(addr)
		sms.DestinationAddress = addrBuf.Bytes()

		sms.ProtocolIdentifier = 0x00 // Short Message Type 0
		sms.DataCodingScheme = byte(s.Encoding)

		switch s.VPFormat {
		case ValidityPeriodFormats.Relative:
			sms.ValidityPeriod = []byte{s.VP.Octet()}
		case ValidityPeriodFormats.Absolute, ValidityPeriodFormats.Enhanced:
			return 0, nil, ErrNonRelative
		}

		userData, dataLen, err := s.encodeUserData(udh)
		if err != nil {
			return 0, nil, err
		}
		sms.UserData = userData
		sms.UserDataLength = dataLen

		n, err := buf.Write(sms.Bytes())
		if err != nil {
			return 0, nil, err
		}
		return n, buf.Bytes(), nil
	default:
		return 0, nil, ErrUnknownMessageType
	}
}

// encodeUserData assembles the (possibly UDH-prefixed) user data field and
// the declared User-Data-Length: the septet count for GSM-7, the octet
// count for UCS-2 (plus the UDH's own octets, per 3GPP TS 23.040 9.2.3.24).
func (s *Message) encodeUserData(udh []byte) (data []byte, length byte, err error) {
	switch s.Encoding {
	case Encodings.Gsm7Bit, Encodings.Gsm7Bit_2, Encodings.Gsm7Bit_3:
		if len(udh) == 0 {
			return pdu.Encode7Bit(s.Text), byte(pdu.SeptetCount(s.Text)), nil
		}
		fillerSeptets := blocks(len(udh)*8, 7)
		rawSeptets := pdu.SeptetsFor(s.Text)
		septets := make([]byte, fillerSeptets, fillerSeptets+len(rawSeptets))
		septets = append(septets, rawSeptets...)
		packed := pdu.PackSeptets(septets)
		// udh occupies the leading octets of packed exactly, by construction.
		copy(packed, udh)
		return packed, byte(fillerSeptets + len(rawSeptets)), nil
	case Encodings.UCS2:
		body := pdu.EncodeUcs2(s.Text)
		return append(append([]byte{}, udh...), body...), byte(len(udh) + len(body)), nil
	default:
		return nil, 0, ErrUnknownEncoding
	}
}

// ReadFrom constructs a message from the supplied PDU octets. Returns the number of bytes read.
// Complies with 3GPP TS 23.040.
func (s *Message) ReadFrom(octets []byte) (n int, err error) {
	*s = Message{}
	buf := bytes.NewReader(octets)
	scLen, err := buf.ReadByte()
	n++
	if err != nil {
		return
	}
	if scLen > 16 {
		return 0, ErrIncorrectSize
	}
	addr := make([]byte, scLen)
	off, err := io.ReadFull(buf, addr)
	n += off
	if err != nil {
		return
	}
	if scLen > 0 {
		if err = s.ServiceCenterAddress.ReadFrom(addr); err != nil {
			return
		}
	}
	msgType, err := buf.ReadByte()
	n++
	if err != nil {
		return
	}
	n--
	buf.UnreadByte()
	s.Type = MessageType(msgType & 0x03)

	switch s.Type {
	case MessageTypes.Deliver:
		var sms smsDeliver
		off, err2 := sms.FromBytes(octets[1+scLen:])
		n += off
		if err2 != nil {
			return n, err2
		}
		s.MoreMessagesToSend = sms.MoreMessagesToSend
		s.LoopPrevention = sms.LoopPrevention
		s.ReplyPathExists = sms.ReplyPath
		s.UserDataStartsWithHeader = sms.UserDataHeaderIndicator
		s.StatusReportIndication = sms.StatusReportIndication
		if err = s.Address.ReadFrom(sms.OriginatingAddress[1:]); err != nil {
			return
		}
		if PhoneNumberType(sms.OriginatingAddress[1]&0b0111_0000) == PhoneNumberTypes.Alphanumeric {
			// The length octet counts semi-octets: 4 bits each, 7 bits per character.
			s.Address = PhoneNumber(cutStr(string(s.Address), int(sms.OriginatingAddress[0])*4/7))
		}
		s.Encoding = Encoding(sms.DataCodingScheme)
		s.ServiceCenterTime.ReadFrom(sms.ServiceCentreTimestamp)
		if err = s.decodeUserData(sms.UserData, int(sms.UserDataLength)); err != nil {
			return
		}
	case MessageTypes.Submit:
		var sms smsSubmit
		off, err2 := sms.FromBytes(octets[1+scLen:])
		n += off
		if err2 != nil {
			return n, err2
		}
		s.RejectDuplicates = sms.RejectDuplicates
		s.VPFormat = ValidityPeriodFormat(sms.ValidityPeriodFormat)

		switch s.VPFormat {
		case ValidityPeriodFormats.Absolute, ValidityPeriodFormats.Enhanced:
			return n, ErrNonRelative
		}

		s.ReplyPathExists = sms.ReplyPath
		s.UserDataStartsWithHeader = sms.UserDataHeaderIndicator
		s.StatusReportRequest = sms.StatusReportRequest
		if err = s.Address.ReadFrom(sms.DestinationAddress[1:]); err != nil {
			return
		}
		s.Encoding = Encoding(sms.DataCodingScheme)

		if s.VPFormat != ValidityPeriodFormats.FieldNotPresent && len(sms.ValidityPeriod) > 0 {
			s.VP.ReadFrom(sms.ValidityPeriod[0])
		}

		if err = s.decodeUserData(sms.UserData, int(sms.UserDataLength)); err != nil {
			return
		}
	default:
		return n, ErrUnknownMessageType
	}

	return
}

// decodeUserData decodes the (possibly UDH-prefixed) user data field into
// s.Text, populating the concatenated-SMS fields when a header is present.
func (s *Message) decodeUserData(userData []byte, declaredLen int) error {
	var udh UserDataHeader
	udhOctets := 0
	if s.UserDataStartsWithHeader {
		udhOctets = udhOctetLen(userData)
		if udhOctets > 0 {
			if err := udh.ReadFrom(userData); err != nil {
				return err
			}
			s.SplitRef = byte(udh.Tag)
			s.SplitParts = udh.TotalNumber
			s.SplitNo = udh.Sequence
		}
	}

	switch s.Encoding.Class() {
	case Encodings.Gsm7Bit:
		septets := pdu.Septets(userData)
		if udhOctets > 0 {
			skip := blocks(udhOctets*8, 7)
			if skip > len(septets) {
				skip = len(septets)
			}
			septets = septets[skip:]
			declaredLen -= udhOctets + 1
		}
		text, err := pdu.DecodeSeptets(septets)
		if err != nil {
			return err
		}
		s.Text = cutStr(text, declaredLen)
		return nil
	case Encodings.UCS2:
		body := userData
		if udhOctets > 0 && udhOctets <= len(body) {
			body = body[udhOctets:]
		}
		text, err := pdu.DecodeUcs2(body, s.UserDataStartsWithHeader)
		if err != nil {
			return err
		}
		s.Text = text
		return nil
	default:
		return ErrUnknownEncoding
	}
}

func cutStr(str string, n int) string {
	if n < 0 {
		return ""
	}
	runes := []rune(str)
	if n < len(runes) {
		return string(runes[0:n])
	}
	return str
}
