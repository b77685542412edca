package sms

import "errors"

// Common errors.
var (
	ErrUnknownEncoding    = errors.New("sms: unsupported encoding")
	ErrUnknownMessageType = errors.New("sms: unsupported message type")
	ErrIncorrectSize      = errors.New("sms: decoded incorrect size of field")
	ErrNonRelative        = errors.New("sms: non-relative validity period support is not implemented yet")

	// ErrIncorrectUserDataHeaderLength is returned by UserDataHeader.ReadFrom
	// when the declared header length doesn't fit inside the supplied octets.
	ErrIncorrectUserDataHeaderLength = errors.New("sms: incorrect user data header length")
)
