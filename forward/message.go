// Package forward implements the forwarding state machine: it owns the
// seen-message cache, decides which SIM messages are new, which are stale,
// and drives the reply/command/forward dialogue with the modem on every
// polling iteration.
package forward

import (
	"time"

	"github.com/dsamersoff/smsforward/internal/byteutil"
	"github.com/dsamersoff/smsforward/sms"
)

// Message is a decoded SMS augmented with the bookkeeping the cache needs:
// its content hash, its SIM storage slot (for deletion), and whether it has
// already been relayed to the destination.
type Message struct {
	sms.Message

	HashID    uint16
	SIMIndex  int
	Forwarded bool
}

// Decode reads a raw PDU octet string (as returned by modem.ReadOne or
// modem.ListAll) at the given SIM index into a Message. HashID is the
// CRC-16 of the PDU's hex-ASCII form, matching the data model's definition
// of the cache fingerprint.
func Decode(simIndex int, raw []byte) (*Message, error) {
	var m Message
	if _, err := m.Message.ReadFrom(raw); err != nil {
		return nil, err
	}
	m.SIMIndex = simIndex
	m.HashID = byteutil.CRC16([]byte(byteutil.Bin2Hex(raw)))
	return &m, nil
}

// sameAs reports whether two messages refer to the same logical SMS per the
// cache lookup's compare_messages rule: hash_id, split_ref, split_no,
// split_parts, timestamp and sender must all agree.
func (m *Message) sameAs(other *Message) bool {
	return m.HashID == other.HashID &&
		m.SplitRef == other.SplitRef &&
		m.SplitNo == other.SplitNo &&
		m.SplitParts == other.SplitParts &&
		time.Time(m.ServiceCenterTime).Equal(time.Time(other.ServiceCenterTime)) &&
		m.Address == other.Address
}

// shortTag renders the sender/timestamp annotation appended or prepended to
// a forwarded body: "<sender> <MM-DDTHH:MM:SS>".
func (m *Message) shortTag() string {
	t := time.Time(m.ServiceCenterTime)
	return string(m.Address) + " " + t.Format("01-02T15:04:05")
}
