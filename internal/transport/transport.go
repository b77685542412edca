// Package transport provides a byte-oriented channel to a modem exposed as
// a serial device, mirroring the scoped open/read/write/close surface of a
// Linux TTY configured 115200 8N1 raw.
package transport

import (
	"errors"
	"io"
	"time"

	serial "github.com/tarm/goserial"
)

// Baud is the fixed line rate used for every supported modem.
const Baud = 115200

// ReadGranularity is a 1 ms per-byte read pacing value. Channel does not
// apply it: Read returns whatever the serial port delivers in one call.
const ReadGranularity = time.Millisecond

// ErrShortWrite is returned by Write when fewer bytes were written than requested.
var ErrShortWrite = errors.New("transport: short write")

// ErrClosed is returned by Read/Write after Close.
var ErrClosed = errors.New("transport: channel closed")

// Channel is a scoped, full-duplex byte channel to a modem.
type Channel struct {
	port io.ReadWriteCloser
}

// Open acquires the named serial device at the fixed 115200 8N1 raw
// configuration. readTimeout bounds how long a single Read call may wait
// for the first byte of a response.
func Open(device string, readTimeout time.Duration) (*Channel, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        Baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Channel{port: port}, nil
}

// Write writes the whole of data to the channel, returning ErrShortWrite if
// the underlying device accepted fewer bytes.
func (c *Channel) Write(data []byte) (int, error) {
	if c.port == nil {
		return 0, ErrClosed
	}
	n, err := c.port.Write(data)
	if err != nil {
		return n, err
	}
	if n < len(data) {
		return n, ErrShortWrite
	}
	return n, nil
}

// Read fills dst from the channel, returning as soon as at least one byte
// has arrived or the configured read timeout elapses with nothing read. A
// zero-length, nil-error result means timeout.
func (c *Channel) Read(dst []byte) (int, error) {
	if c.port == nil {
		return 0, ErrClosed
	}
	return c.port.Read(dst)
}

// Close releases the underlying descriptor. Close is idempotent.
func (c *Channel) Close() error {
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	return err
}
