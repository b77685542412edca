package modem

import "strings"

// Opt represents a numerical option.
type Opt struct {
	ID          int
	Description string
}

// StringOpt represents a string option.
type StringOpt struct {
	ID          string
	Description string
}

// UnknownOpt represents an option that was parsed incorrectly or was not parsed at all.
var UnknownOpt = Opt{ID: -1, Description: "-"}

// UnknownStringOpt represents a string option that was parsed incorrectly or was not parsed at all.
var UnknownStringOpt = StringOpt{ID: "nil", Description: "Unknown"}

// KillCmd is the reply token that FinalResults resolves as Timeout; nothing
// in this package sends it to the device.
const KillCmd = "AT_KILL"

// NoopCmd is a ping command that signals that the device is responsive.
const NoopCmd = "AT"

type optMap map[int]Opt
type stringOpts []StringOpt

func (o optMap) Resolve(id int) Opt {
	if opt, ok := o[id]; ok {
		return opt
	}
	return UnknownOpt
}

func (s stringOpts) Resolve(str string) StringOpt {
	for _, v := range s {
		if strings.HasPrefix(str, v.ID) {
			return v
		}
	}
	return UnknownStringOpt
}

var result = stringOpts{
	{"AT", "Noop"},
	{"OK", "Success"},
	{"CONNECT", "Connect"},
	{"RING", "Ringing"},
	{"NO CARRIER", "No carrier"},
	{"ERROR", "Error"},
	{"NO DIALTONE", "No dialtone"},
	{"BUSY", "Busy"},
	{"NO ANSWER", "No answer"},
	{"+CME ERROR:", "CME Error"},
	{"+CMS ERROR:", "CMS Error"},
	{"COMMAND NOT SUPPORT", "Command is not supported"},
	{"TOO MANY PARAMETERS", "Too many parameters"},
	{"AT_KILL", "Timeout"},
}

// FinalResults represent the possible terminal tokens of a modem reply.
var FinalResults = struct {
	Resolve func(string) StringOpt

	Noop              StringOpt
	Ok                StringOpt
	Connect           StringOpt
	Ring              StringOpt
	NoCarrier         StringOpt
	Error             StringOpt
	NoDialtone        StringOpt
	Busy              StringOpt
	NoAnswer          StringOpt
	CmeError          StringOpt
	CmsError          StringOpt
	NotSupported      StringOpt
	TooManyParameters StringOpt
	Timeout           StringOpt
}{
	func(str string) StringOpt { return result.Resolve(str) },

	result[0], result[1], result[2], result[3],
	result[4], result[5], result[6], result[7],
	result[8], result[9], result[10], result[11],
	result[12], result[13],
}

var mem = stringOpts{
	{"ME", "NV RAM"},
	{"MT", "ME-associated storage"},
	{"SM", "Sim message storage"},
	{"SR", "State report storage"},
}

// MemoryTypes represent the available options of message storage.
var MemoryTypes = struct {
	Resolve func(string) StringOpt

	NvRAM      StringOpt
	Associated StringOpt
	Sim        StringOpt
	State      StringOpt
}{
	func(str string) StringOpt { return mem.Resolve(str) },

	mem[0], mem[1], mem[2], mem[3],
}

var delOpts = optMap{
	0: {0, "Delete message by index"},
	1: {1, "Delete all read messages except MO"},
	2: {2, "Delete all read messages except unsent MO"},
	3: {3, "Delete all except unread"},
	4: {4, "Delete all messages"},
}

// DeleteOptions represent the available options of message deletion masks.
var DeleteOptions = struct {
	Resolve func(int) Opt

	Index            Opt
	AllReadNotMO     Opt
	AllReadNotUnsent Opt
	AllNotUnread     Opt
	All              Opt
}{
	func(id int) Opt { return delOpts.Resolve(id) },

	delOpts[0], delOpts[1], delOpts[2], delOpts[3], delOpts[4],
}

var msgFlags = optMap{
	0: {0, "Unread"},
	1: {1, "Read"},
	2: {2, "Unsent"},
	3: {3, "Sent"},
	4: {4, "Any"},
}

// MessageFlags represent the available states of messages in memory, used
// by CMGL's filtering argument.
var MessageFlags = struct {
	Resolve func(int) Opt

	Unread Opt
	Read   Opt
	Unsent Opt
	Sent   Opt
	Any    Opt
}{
	func(id int) Opt { return msgFlags.Resolve(id) },

	msgFlags[0], msgFlags[1], msgFlags[2], msgFlags[3], msgFlags[4],
}
