// Package modem implements the AT command dialogue layer: issuing commands
// over a byte channel, scanning line-oriented responses for terminal
// tokens, and extracting the structured values the forwarding state machine
// needs (message counts, PDUs, contact entries, operator info).
package modem

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dsamersoff/smsforward/internal/transport"
)

// DefaultTimeout bounds a single command/response exchange.
const DefaultTimeout = 30 * time.Second

// Sep is the CRLF command terminator.
const Sep = "\r\n"

// Sub is the Ctrl+Z byte that terminates a CMGS text body.
const Sub = "\x1A"

// Common errors.
var (
	ErrTimeout        = errors.New("modem: timeout")
	ErrClosed         = errors.New("modem: channel is closed")
	ErrNotInitialized = errors.New("modem: not opened")
	ErrParseReport    = errors.New("modem: error while parsing response")
)

// Device represents a modem reachable over a single serial channel,
// operated exclusively in PDU mode.
type Device struct {
	// Path is the serial device path, e.g. /dev/ttyUSB0.
	Path string
	// Timeout overrides DefaultTimeout for command exchanges.
	Timeout time.Duration

	channel *transport.Channel
}

// Open acquires the serial channel. Init-level AT setup (echo off, PDU
// mode, charset) is the caller's responsibility via the typed helpers below.
func (d *Device) Open() error {
	ch, err := transport.Open(d.Path, d.timeout())
	if err != nil {
		return err
	}
	d.channel = ch
	return nil
}

// Close releases the serial channel. Close is a no-op if already closed.
func (d *Device) Close() error {
	if d.channel == nil {
		return nil
	}
	err := d.channel.Close()
	d.channel = nil
	return err
}

func (d *Device) timeout() time.Duration {
	if d.Timeout == 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

// Send writes a command terminated with CRLF, then reads and classifies the
// response: lines up to and including the terminal token (OK, ERROR,
// +CME ERROR, +CMS ERROR) are scanned; all non-empty lines before the
// terminal token, except the echoed request itself, are joined with '\n'
// and returned as reply.
func (d *Device) Send(req string) (reply string, err error) {
	if d.channel == nil {
		return "", ErrNotInitialized
	}

	if _, err = d.channel.Write([]byte(req + Sep)); err != nil {
		return "", err
	}

	buf, err := d.readResponse()
	if err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(strings.NewReader(buf))
	var lines []string
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if len(text) < 1 || text == req {
			continue
		}
		lines = append(lines, text)
	}

	for i, text := range lines {
		switch opt := FinalResults.Resolve(text); opt {
		case FinalResults.Ok, FinalResults.Noop:
			reply = strings.Join(lines[:i], "\n")
			return reply, nil
		case FinalResults.Timeout:
			return "", ErrTimeout
		case FinalResults.CmeError, FinalResults.CmsError,
			FinalResults.Error, FinalResults.NotSupported,
			FinalResults.TooManyParameters, FinalResults.NoCarrier:
			return "", errors.New(text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Submit sends AT+CMGS for the given PDU, ignoring the modem's '>' prompt:
// the PDU is written immediately followed by Sub, and the response is
// scanned the same way as Send. This tolerates modems that emit the prompt
// at varied timing.
func (d *Device) Submit(length int, octets []byte) error {
	if d.channel == nil {
		return ErrNotInitialized
	}
	req := fmt.Sprintf("AT+CMGS=%d", length)
	if _, err := d.channel.Write([]byte(req + Sep)); err != nil {
		return err
	}
	body := fmt.Sprintf("%02X", octets) + Sub
	if _, err := d.channel.Write([]byte(body)); err != nil {
		return err
	}

	buf, err := d.readResponse()
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(strings.NewReader(buf))
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		switch FinalResults.Resolve(text) {
		case FinalResults.CmeError, FinalResults.CmsError, FinalResults.Error:
			return errors.New(text)
		}
	}
	return nil
}

// responseBufferSize bounds a single gathered response.
const responseBufferSize = 4096

// readResponse gathers bytes from the channel into a bounded buffer until a
// read timeout (no more data arriving) is observed.
func (d *Device) readResponse() (string, error) {
	var sb strings.Builder
	chunk := make([]byte, 256)
	for sb.Len() < responseBufferSize {
		n, err := d.channel.Read(chunk)
		if n > 0 {
			sb.Write(chunk[:n])
		}
		if err != nil {
			return sb.String(), err
		}
		if n == 0 {
			break
		}
	}
	return sb.String(), nil
}

// quoted extracts the payload of the first double-quoted field in str.
func quoted(str string) string {
	start := strings.IndexByte(str, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(str[start+1:], '"')
	if end < 0 {
		return ""
	}
	return str[start+1 : start+1+end]
}

func parseUint(str string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(str), 10, 64)
}
