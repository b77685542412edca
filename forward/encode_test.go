package forward

import (
	"testing"

	"github.com/dsamersoff/smsforward/pdu"
	"github.com/dsamersoff/smsforward/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePDUMultipartSinglePart(t *testing.T) {
	t.Parallel()

	msgs := createPDUMultipart("79269965690", "short text")
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].UserDataStartsWithHeader)
	assert.Equal(t, 0, msgs[0].SplitNo)
	assert.Equal(t, sms.Encodings.Gsm7Bit, msgs[0].Encoding)
}

func TestCreatePDUMultipartSplits(t *testing.T) {
	t.Parallel()

	long := ""
	for i := 0; i < 40; i++ {
		long += "0123456789"
	}
	msgs := createPDUMultipart("79269965690", long)
	require.True(t, len(msgs) > 1)

	var reassembled string
	for i, m := range msgs {
		assert.True(t, m.UserDataStartsWithHeader)
		assert.Equal(t, len(msgs), m.SplitParts)
		assert.Equal(t, i+1, m.SplitNo)
		assert.Equal(t, msgs[0].SplitRef, m.SplitRef)
		reassembled += m.Text
	}
	assert.Equal(t, long, reassembled)
}

func TestCreatePDUMultipartUCS2(t *testing.T) {
	t.Parallel()

	msgs := createPDUMultipart("79269965690", "Привет")
	require.Len(t, msgs, 1)
	assert.Equal(t, sms.Encodings.UCS2, msgs[0].Encoding)
}

func TestCreatePDUTruncatedGsm7(t *testing.T) {
	t.Parallel()

	long := ""
	for i := 0; i < 40; i++ {
		long += "0123456789"
	}
	m := createPDUTruncated("79269965690", long)
	assert.False(t, m.UserDataStartsWithHeader)
	assert.True(t, pdu.SeptetCount(m.Text) <= SeptetCap)
	assert.True(t, len(m.Text) < len(long))
}

func TestCreatePDUTruncatedUCS2(t *testing.T) {
	t.Parallel()

	long := ""
	for i := 0; i < 100; i++ {
		long += "я"
	}
	m := createPDUTruncated("79269965690", long)
	assert.LessOrEqual(t, len([]rune(m.Text)), MsgTextLimit/2)
}

func TestCreatePDUMultipartRoundTripsThroughPDU(t *testing.T) {
	t.Parallel()

	long := ""
	for i := 0; i < 40; i++ {
		long += "0123456789"
	}
	msgs := createPDUMultipart("79269965690", long)
	require.True(t, len(msgs) > 1)

	for i := range msgs {
		_, octets, err := msgs[i].PDU()
		require.NoError(t, err)

		var decoded sms.Message
		_, err = decoded.ReadFrom(octets)
		require.NoError(t, err)
		assert.Equal(t, msgs[i].Text, decoded.Text)
		assert.Equal(t, msgs[i].SplitNo, decoded.SplitNo)
		assert.Equal(t, msgs[i].SplitParts, decoded.SplitParts)
	}
}
