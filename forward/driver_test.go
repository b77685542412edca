package forward

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dsamersoff/smsforward/options"
	"github.com/dsamersoff/smsforward/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModem struct {
	operator        string
	contacts        map[int][2]string
	messages        map[int][]byte
	deleted         []int
	deleteAllCalled bool
	submitted       [][]byte
}

func newFakeModem() *fakeModem {
	return &fakeModem{
		contacts: make(map[int][2]string),
		messages: make(map[int][]byte),
	}
}

func (f *fakeModem) Echo(bool) error        { return nil }
func (f *fakeModem) PDUMode() error         { return nil }
func (f *fakeModem) UCS2Charset() error     { return nil }
func (f *fakeModem) OperatorInfo() (string, error) {
	if f.operator == "" {
		return "", errors.New("no operator")
	}
	return f.operator, nil
}
func (f *fakeModem) MessageCount() (int, error) { return len(f.messages), nil }
func (f *fakeModem) ReadOne(index int) ([]byte, error) {
	raw, ok := f.messages[index]
	if !ok {
		return nil, errors.New("no such message")
	}
	return raw, nil
}
func (f *fakeModem) ListAll() (map[int][]byte, error) { return f.messages, nil }
func (f *fakeModem) DeleteOne(index int) error {
	f.deleted = append(f.deleted, index)
	delete(f.messages, index)
	return nil
}
func (f *fakeModem) DeleteAll() error {
	f.deleteAllCalled = true
	f.messages = make(map[int][]byte)
	return nil
}
func (f *fakeModem) ReadContact(index int) (string, string, error) {
	c, ok := f.contacts[index]
	if !ok {
		return "", "", errors.New("empty slot")
	}
	return c[0], c[1], nil
}
func (f *fakeModem) Submit(length int, octets []byte) error {
	f.submitted = append(f.submitted, octets)
	return nil
}

type fakeLogger struct {
	warnings []string
}

func (l *fakeLogger) Debugf(string, ...interface{}) {}
func (l *fakeLogger) Infof(string, ...interface{})  {}
func (l *fakeLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *fakeLogger) Errorf(string, ...interface{}) {}

func buildDeliverPDU(t *testing.T, from sms.PhoneNumber, text string, ts time.Time) []byte {
	t.Helper()
	m := sms.Message{
		Type:              sms.MessageTypes.Deliver,
		Encoding:          sms.Encodings.Gsm7Bit,
		Address:           from,
		ServiceCenterTime: sms.Timestamp(ts),
		Text:              text,
	}
	_, octets, err := m.PDU()
	require.NoError(t, err)
	return octets
}

func newTestDriver(modem Modem) *Driver {
	return NewDriver(modem, options.New("test"), &fakeLogger{})
}

func TestFlowSetupUsesOverride(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	d := newTestDriver(fm)

	require.NoError(t, d.FlowSetup("+79001112233"))
	assert.EqualValues(t, "79001112233", d.Dest())
}

func TestFlowSetupScansContactsForPrimaryNumber(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.contacts[3] = [2]string{"+79261234567", "PRIMARY NUMBER"}
	d := newTestDriver(fm)

	require.NoError(t, d.FlowSetup(""))
	assert.EqualValues(t, "79261234567", d.Dest())
}

func TestFlowSetupFailsWithoutOperator(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	d := newTestDriver(fm)

	err := d.FlowSetup("+79001112233")
	assert.Error(t, err)
}

func TestFlowSetupFailsWithoutDestination(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	d := newTestDriver(fm)

	err := d.FlowSetup("")
	assert.ErrorIs(t, err, ErrNoDestination)
}

func TestFlowForwardsUnseenMessage(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.messages[1] = buildDeliverPDU(t, "+79269965690", "hello there", time.Now())

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))

	require.NoError(t, d.Flow())
	assert.Len(t, fm.submitted, 1)
	assert.Equal(t, 1, d.CacheLen())
}

func TestFlowDeletesAfterForward(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.messages[1] = buildDeliverPDU(t, "+79269965690", "hello there", time.Now())

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))

	require.NoError(t, d.Flow())
	assert.Len(t, fm.submitted, 1)

	// Message still present on the SIM; second pass finds it already
	// forwarded and deletes it.
	fm.messages[1] = buildDeliverPDU(t, "+79269965690", "hello there", time.Now())
	require.NoError(t, d.Flow())

	assert.Equal(t, []int{1}, fm.deleted)
	assert.Equal(t, 0, d.CacheLen())
}

func TestFlowDoesNotForwardWhenForwardingDisabled(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.messages[1] = buildDeliverPDU(t, "+79269965690", "hello there", time.Now())

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))
	d.Opts.SetForward(false)

	require.NoError(t, d.Flow())
	assert.Empty(t, fm.submitted)
}

func TestFlowCommandMessageTogglesForward(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.messages[1] = buildDeliverPDU(t, "+79000000000", "++FORWARD 0", time.Now())

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))

	require.NoError(t, d.Flow())
	assert.False(t, d.Opts.Snapshot().Forward)
}

func TestFlowCommandClearDeletesEverything(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"
	fm.messages[1] = buildDeliverPDU(t, "+79000000000", "++CLEAR", time.Now())

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))

	require.NoError(t, d.Flow())
	assert.True(t, fm.deleteAllCalled)
}

func TestFlowMultipartReassembly(t *testing.T) {
	t.Parallel()

	fm := newFakeModem()
	fm.operator = "Test Operator"

	first := sms.Message{
		Type: sms.MessageTypes.Deliver, Encoding: sms.Encodings.Gsm7Bit,
		Address: "+79269965690", ServiceCenterTime: sms.Timestamp(time.Now()),
		Text: "part one ", UserDataStartsWithHeader: true,
		SplitRef: 0xE1, SplitParts: 2, SplitNo: 1,
	}
	second := first
	second.Text = "part two"
	second.SplitNo = 2

	_, octets1, err := first.PDU()
	require.NoError(t, err)
	_, octets2, err := second.PDU()
	require.NoError(t, err)
	fm.messages[1] = octets1
	fm.messages[2] = octets2

	d := newTestDriver(fm)
	require.NoError(t, d.FlowSetup("+79000000000"))

	require.NoError(t, d.Flow())
	assert.Empty(t, fm.submitted, "no forwarding until both parts seen")
	assert.Equal(t, 2, d.CacheLen())

	require.NoError(t, d.Flow())
	assert.Len(t, fm.submitted, 1, "reassembled message forwarded once both parts seen")
}
