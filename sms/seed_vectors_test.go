package sms

import (
	"testing"
	"time"

	"github.com/dsamersoff/smsforward/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These vectors are fixed PDU strings; they pin the codec against bit-rot in the semi-octet/septet packing paths
// that table-driven cases alone wouldn't catch.

func TestSeedVector_DecodeAlphanumericSender(t *testing.T) {
	t.Parallel()

	raw := util.MustBytes("0791448720003023240DD0E474D81C0EBB010000111011315214000BE474D81C0EBB5DE3771B")
	var msg Message
	_, err := msg.ReadFrom(raw)
	require.NoError(t, err)

	assert.Equal(t, PhoneNumber("diafaan"), msg.Address)
	assert.Equal(t, "diafaan.com", msg.Text)

	want, err := time.Parse(time.RFC3339, "2011-01-11T13:25:41+00:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(time.Time(msg.ServiceCenterTime)))
}

func TestSeedVector_DecodeInternationalSender(t *testing.T) {
	t.Parallel()

	raw := util.MustBytes("07919712690080F8000B919712890064F90000522090022174210CD4F29C0E1287C76B50D109")
	var msg Message
	_, err := msg.ReadFrom(raw)
	require.NoError(t, err)

	assert.Equal(t, PhoneNumber("+79219800469"), msg.Address)
	assert.Equal(t, "Test back EN", msg.Text)

	want, err := time.Parse(time.RFC3339, "2025-02-09T20:12:47+03:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(time.Time(msg.ServiceCenterTime)))
}

func TestSeedVector_EncodeGsm7Submit(t *testing.T) {
	t.Parallel()

	msg := Message{
		Type:     MessageTypes.Submit,
		Encoding: Encodings.Gsm7Bit,
		Address:  "+79219800469",
		VPFormat: ValidityPeriodFormats.Relative,
		Text:     "Test IoT",
	}
	_, octets, err := msg.PDU()
	require.NoError(t, err)
	assert.Equal(t, "0011000B919712890064F900000008D4F29C0E4ABEA9", util.HexString(octets))
}

func TestSeedVector_EncodeUcs2Submit(t *testing.T) {
	t.Parallel()

	msg := Message{
		Type:     MessageTypes.Submit,
		Encoding: Encodings.UCS2,
		Address:  "+79219800469",
		VPFormat: ValidityPeriodFormats.Relative,
		Text:     "Проверка русского IoT",
	}
	_, octets, err := msg.PDU()
	require.NoError(t, err)
	assert.Equal(t,
		"0011000B919712890064F90008002A041F0440043E043204350440043A043000200440044304410441043A043E0433043E00200049006F0054",
		util.HexString(octets))
}
