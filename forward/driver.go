package forward

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dsamersoff/smsforward/internal/byteutil"
	"github.com/dsamersoff/smsforward/options"
	"github.com/dsamersoff/smsforward/pdu"
	"github.com/dsamersoff/smsforward/sms"
)

// Modem is the subset of *modem.Device the driver depends on, kept as an
// interface so tests can exercise the state machine against a fake.
type Modem interface {
	Echo(on bool) error
	PDUMode() error
	UCS2Charset() error
	OperatorInfo() (string, error)
	MessageCount() (int, error)
	ReadOne(index int) ([]byte, error)
	ListAll() (map[int][]byte, error)
	DeleteOne(index int) error
	DeleteAll() error
	ReadContact(index int) (phone, name string, err error)
	Submit(length int, octets []byte) error
}

// Logger is the subset of logging.Logger the driver needs; kept as a small
// interface so tests can supply a fake.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// VerbositySetter is implemented by loggers whose level can be adjusted at
// runtime, so ++LOG can retune both the options record and the logger.
type VerbositySetter interface {
	SetVerbosity(int)
}

// DefaultExpire is the soft-expiry window used by the Linux build.
const DefaultExpire = 3 * 24 * time.Hour

// primaryNumberLiteral is the SIM contact name that marks the forwarding
// destination.
const primaryNumberLiteral = "PRIMARY NUMBER"

// primaryNumberUCS2Hex is primaryNumberLiteral encoded as UCS-2 hex, the
// form some handsets store contact names in.
const primaryNumberUCS2Hex = "005000520049004D0041005200590020004E0055004D004200450052"

var (
	ErrNoOperator    = errors.New("forward: modem reports no operator")
	ErrNoDestination = errors.New("forward: could not determine destination address")
)

// Driver runs the forwarding state machine against a single modem over its
// whole lifetime: flow setup once, then repeated polling iterations.
type Driver struct {
	Device Modem
	Opts   *options.Options
	Log    Logger

	Expire time.Duration

	dest          sms.PhoneNumber
	cache         Cache
	latestMsgTime time.Time
}

// NewDriver builds a Driver with the default (three-day) expiry window.
func NewDriver(device Modem, opts *options.Options, log Logger) *Driver {
	return &Driver{Device: device, Opts: opts, Log: log, Expire: DefaultExpire}
}

// Dest returns the destination address resolved by the last FlowSetup call.
func (d *Driver) Dest() sms.PhoneNumber {
	return d.dest
}

// CacheLen reports how many messages are currently held in the seen cache.
func (d *Driver) CacheLen() int {
	return d.cache.Len()
}

// FlowSetup resets per-run state, brings the modem into PDU/UCS-2 mode, and
// resolves the destination address: overrideDest (leading '+' stripped) if
// non-empty, otherwise the SIM contact named PRIMARY NUMBER.
func (d *Driver) FlowSetup(overrideDest string) error {
	d.latestMsgTime = time.Time{}
	d.cache = Cache{}

	if err := d.Device.Echo(false); err != nil {
		return err
	}
	if err := d.Device.PDUMode(); err != nil {
		return err
	}
	if err := d.Device.UCS2Charset(); err != nil {
		return err
	}

	operator, err := d.Device.OperatorInfo()
	if err != nil {
		return err
	}
	if operator == "" {
		return ErrNoOperator
	}
	d.Log.Infof("flow setup: operator=%q", operator)

	dest := strings.TrimPrefix(overrideDest, "+")
	if dest == "" {
		dest, err = d.findPrimaryNumber()
		if err != nil {
			return err
		}
	}
	if dest == "" {
		return ErrNoDestination
	}
	d.dest = sms.PhoneNumber(dest)
	d.Log.Infof("flow setup: destination=%s", d.dest)
	return nil
}

// findPrimaryNumber scans SIM contacts 1..9 for one named PRIMARY NUMBER,
// either literally or as its UCS-2 hex encoding, and returns its phone
// number with any leading '+' stripped.
func (d *Driver) findPrimaryNumber() (string, error) {
	for i := 1; i <= 9; i++ {
		phone, name, err := d.Device.ReadContact(i)
		if err != nil {
			continue
		}
		if name == primaryNumberLiteral || name == primaryNumberUCS2Hex || decodesToPrimaryNumber(name) {
			return strings.TrimPrefix(phone, "+"), nil
		}
	}
	return "", nil
}

func decodesToPrimaryNumber(name string) bool {
	raw := byteutil.Hex2Bin(name)
	if len(raw) == 0 {
		return false
	}
	decoded, err := pdu.DecodeUcs2(raw, false)
	return err == nil && decoded == primaryNumberLiteral
}

// Flow runs one polling iteration: read every message currently on the SIM,
// classify it against the seen cache, and act per the unseen/seen paths.
func (d *Driver) Flow() error {
	count, err := d.Device.MessageCount()
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	for i := 1; i <= count; i++ {
		raw, err := d.Device.ReadOne(i)
		if err != nil {
			d.Log.Warnf("flow: read index %d: %v", i, err)
			continue
		}
		msg, err := Decode(i, raw)
		if err != nil {
			d.Log.Warnf("flow: decode index %d: %v", i, err)
			continue
		}

		its := time.Time(msg.ServiceCenterTime)
		if its.After(d.latestMsgTime) {
			d.latestMsgTime = its
		}

		if existing, idx, found := d.cache.Find(msg); found {
			d.seenPath(existing, idx)
			continue
		}
		d.unseenPath(msg)
	}
	return nil
}

func sameAddress(a, b sms.PhoneNumber) bool {
	return strings.TrimPrefix(string(a), "+") == strings.TrimPrefix(string(b), "+")
}

func (d *Driver) unseenPath(msg *Message) {
	switch {
	case sameAddress(msg.Address, d.dest):
		if d.processCommand(msg.Text) {
			msg.Forwarded = true
		}
	case msg.SplitNo == 0:
		if d.Opts.Snapshot().Forward {
			if err := d.forwardMessage(msg); err != nil {
				d.Log.Warnf("flow: forward index %d: %v", msg.SIMIndex, err)
			} else {
				msg.Forwarded = true
			}
		}
	}
	// Multipart parts that are not command messages are saved unforwarded,
	// awaiting the remaining parts.

	if !d.cache.Add(msg) {
		d.Log.Warnf("flow: seen-cache full, dropping index %d", msg.SIMIndex)
	}
}

func (d *Driver) seenPath(msg *Message, idx int) {
	opts := d.Opts.Snapshot()

	if d.expired(msg, opts) {
		if d.tryDelete(msg.SIMIndex, opts) {
			d.cache.Remove(idx)
		}
		return
	}

	if !msg.Forwarded && msg.SplitNo == 0 {
		if opts.Forward {
			if err := d.forwardMessage(msg); err != nil {
				d.Log.Warnf("flow: retry forward index %d: %v", msg.SIMIndex, err)
				return
			}
			msg.Forwarded = true
		}
		return
	}

	if msg.Forwarded {
		if d.tryDelete(msg.SIMIndex, opts) {
			d.cache.Remove(idx)
		}
		return
	}

	if msg.SplitParts > 0 && msg.SplitNo == msg.SplitParts {
		d.reassemble(msg.SplitRef, msg.SplitParts)
	}
}

func (d *Driver) tryDelete(index int, opts options.Snapshot) bool {
	if !opts.MayDelete {
		return false
	}
	if err := d.Device.DeleteOne(index); err != nil {
		d.Log.Warnf("flow: delete index %d: %v", index, err)
		return false
	}
	return true
}

func (d *Driver) expired(msg *Message, opts options.Snapshot) bool {
	if !opts.Expire {
		return false
	}
	its := time.Time(msg.ServiceCenterTime)
	return d.latestMsgTime.Sub(its) > d.expireWindow()
}

func (d *Driver) expireWindow() time.Duration {
	if d.Expire == 0 {
		return DefaultExpire
	}
	return d.Expire
}

// reassemble looks for every constituent of a concatenated-SMS group; if all
// split_parts entries are present, it forwards their texts concatenated in
// ascending split_no order as one logical message and marks every
// constituent forwarded.
func (d *Driver) reassemble(splitRef byte, splitParts int) {
	group := d.cache.Group(splitRef, splitParts)
	if len(group) != splitParts {
		return
	}
	sort.Slice(group, func(i, j int) bool { return group[i].SplitNo < group[j].SplitNo })

	var sb strings.Builder
	for _, part := range group {
		sb.WriteString(part.Text)
	}

	combined := &Message{}
	combined.Address = group[0].Address
	combined.ServiceCenterTime = group[0].ServiceCenterTime
	combined.Text = sb.String()

	if err := d.forwardMessage(combined); err != nil {
		d.Log.Warnf("flow: reassembled forward split_ref=%d: %v", splitRef, err)
		return
	}
	for _, part := range group {
		part.Forwarded = true
	}
}

// forwardMessage relays msg to the destination, tagging it with the sender
// and a shortened timestamp per the multipart/header options, and submits
// the resulting PDU sequence.
func (d *Driver) forwardMessage(msg *Message) error {
	opts := d.Opts.Snapshot()
	tag := msg.shortTag()

	var body string
	if opts.Header {
		body = tag + " " + msg.Text
	} else {
		body = msg.Text + " " + tag
	}

	var parts []sms.Message
	if opts.Multipart {
		parts = createPDUMultipart(d.dest, body)
	} else {
		parts = []sms.Message{createPDUTruncated(d.dest, body)}
	}

	return d.submitAll(parts)
}

func (d *Driver) submitAll(parts []sms.Message) error {
	for _, m := range parts {
		length, octets, err := m.PDU()
		if err != nil {
			return err
		}
		if len(octets)*2 > 2*255 {
			return ErrTooLong
		}
		if err := d.Device.Submit(length, octets); err != nil {
			return err
		}
	}
	return nil
}
