package forward

import (
	"strconv"
	"strings"

	"github.com/dsamersoff/smsforward/internal/byteutil"
	"github.com/dsamersoff/smsforward/pdu"
)

// maxDumpMessages bounds ++DUMP's output.
const maxDumpMessages = 10

// maxDumpContacts bounds ++CONTACTS' output.
const maxDumpContacts = 25

// RunCommand executes text as a ++COMMAND directly, without requiring it to
// have arrived as an SMS from the destination address. It backs the -c CLI
// flag's "run a single command and exit" mode.
func (d *Driver) RunCommand(text string) bool {
	return d.processCommand(text)
}

// processCommand dispatches a command message's text (sender already
// confirmed to equal the destination address). It reports whether text was
// a recognised "++VERB" command; unrecognised "++..." text is not treated
// as a command and ordinary forwarding applies instead.
func (d *Driver) processCommand(text string) bool {
	if !strings.HasPrefix(text, "++") {
		return false
	}
	fields := strings.Fields(text)
	verb := strings.ToUpper(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch verb {
	case "++CLEAR":
		if err := d.Device.DeleteAll(); err != nil {
			d.Log.Warnf("command: CLEAR: %v", err)
		} else {
			d.cache = Cache{}
		}
	case "++DUMP":
		d.dumpMessages()
	case "++CONTACTS":
		d.dumpContacts()
	case "++SAVED":
		d.dumpCache()
	case "++DELETE":
		if v, ok := parseToggleArg(arg, d.Log, "DELETE"); ok {
			d.Opts.SetMayDelete(v)
		}
	case "++EXPIRE":
		if v, ok := parseToggleArg(arg, d.Log, "EXPIRE"); ok {
			d.Opts.SetExpire(v)
		}
	case "++FORWARD":
		if v, ok := parseToggleArg(arg, d.Log, "FORWARD"); ok {
			d.Opts.SetForward(v)
		}
	case "++HEADER":
		if v, ok := parseToggleArg(arg, d.Log, "HEADER"); ok {
			d.Opts.SetHeader(v)
		}
	case "++MULTIPART":
		if v, ok := parseToggleArg(arg, d.Log, "MULTIPART"); ok {
			d.Opts.SetMultipart(v)
		}
	case "++LOG":
		d.setVerbosity(arg)
	default:
		return false
	}
	return true
}

// parseToggleArg implements the permissive argument parsing common to the
// 0/1 toggle commands: a non-numeric tail is treated as zero, and a value
// outside 0/1 is rejected (logged, not applied).
func parseToggleArg(arg string, log Logger, verb string) (value bool, ok bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		log.Warnf("command: %s: non-numeric argument %q treated as 0", verb, arg)
		n = 0
	}
	if n != 0 && n != 1 {
		log.Warnf("command: %s: out-of-range argument %d ignored", verb, n)
		return false, false
	}
	return n != 0, true
}

func (d *Driver) setVerbosity(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		d.Log.Warnf("command: LOG: non-numeric argument %q treated as 0", arg)
		n = 0
	}
	if n < 0 || n > 7 {
		d.Log.Warnf("command: LOG: out-of-range verbosity %d ignored", n)
		return
	}
	d.Opts.SetVerbosity(n)
	if setter, ok := d.Log.(VerbositySetter); ok {
		setter.SetVerbosity(n)
	}
}

func (d *Driver) dumpMessages() {
	all, err := d.Device.ListAll()
	if err != nil {
		d.Log.Warnf("command: DUMP: %v", err)
		return
	}
	n := 0
	for idx, raw := range all {
		if n >= maxDumpMessages {
			break
		}
		msg, err := Decode(idx, raw)
		if err != nil {
			d.Log.Infof("command: DUMP: index %d: decode error: %v", idx, err)
			continue
		}
		d.Log.Infof("command: DUMP: #%d from=%s text=%q", idx, msg.Address, msg.Text)
		n++
	}
}

func (d *Driver) dumpContacts() {
	for i := 1; i <= maxDumpContacts; i++ {
		phone, name, err := d.Device.ReadContact(i)
		if err != nil {
			continue
		}
		if raw := byteutil.Hex2Bin(name); len(raw) > 0 {
			if decoded, derr := pdu.DecodeUcs2(raw, false); derr == nil {
				name = decoded
			}
		}
		d.Log.Infof("command: CONTACTS: #%d phone=%s name=%q", i, phone, name)
	}
}

func (d *Driver) dumpCache() {
	for _, m := range d.cache.Entries() {
		d.Log.Infof("command: SAVED: index=%d sender=%s split=%d/%d forwarded=%t text=%q",
			m.SIMIndex, m.Address, m.SplitNo, m.SplitParts, m.Forwarded, m.Text)
	}
}
