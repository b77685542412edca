package transport

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	written bytes.Buffer
	toRead  *bytes.Reader
	closed  bool
}

func (f *fakePort) Write(p []byte) (int, error) { return f.written.Write(p) }
func (f *fakePort) Read(p []byte) (int, error)  { return f.toRead.Read(p) }
func (f *fakePort) Close() error                { f.closed = true; return nil }

func newChannel(t *testing.T, reply string) (*Channel, *fakePort) {
	t.Helper()
	port := &fakePort{toRead: bytes.NewReader([]byte(reply))}
	return &Channel{port: port}, port
}

func TestChannelWrite(t *testing.T) {
	t.Parallel()

	ch, port := newChannel(t, "")
	n, err := ch.Write([]byte("AT\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "AT\r\n", port.written.String())
}

func TestChannelRead(t *testing.T) {
	t.Parallel()

	ch, _ := newChannel(t, "OK\r\n")
	buf := make([]byte, 16)
	n, err := ch.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "OK\r\n", string(buf[:n]))
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	ch, port := newChannel(t, "")
	require.NoError(t, ch.Close())
	assert.True(t, port.closed)
	require.NoError(t, ch.Close())
}

func TestChannelOperationsFailAfterClose(t *testing.T) {
	t.Parallel()

	ch, _ := newChannel(t, "")
	require.NoError(t, ch.Close())

	_, err := ch.Write([]byte("AT"))
	assert.ErrorIs(t, err, ErrClosed)

	_, err = ch.Read(make([]byte, 4))
	assert.ErrorIs(t, err, ErrClosed)
}

var _ io.ReadWriteCloser = (*fakePort)(nil)
