package modem

import (
	"fmt"
	"strings"

	"github.com/dsamersoff/smsforward/internal/byteutil"
)

// Ping sends AT and succeeds iff the response contains OK.
func (d *Device) Ping() error {
	if d.channel == nil {
		return ErrNotInitialized
	}
	if _, err := d.channel.Write([]byte(NoopCmd + Sep)); err != nil {
		return err
	}
	buf, err := d.readResponse()
	if err != nil {
		return err
	}
	for _, line := range strings.Split(buf, "\n") {
		if strings.TrimSpace(line) == "OK" {
			return nil
		}
	}
	return ErrParseReport
}

// Echo toggles command-echo with ATE0/ATE1.
func (d *Device) Echo(on bool) error {
	flag := "0"
	if on {
		flag = "1"
	}
	_, err := d.Send("ATE" + flag)
	return err
}

// PDUMode switches the device to PDU-mode message handling (AT+CMGF=0).
func (d *Device) PDUMode() error {
	_, err := d.Send("AT+CMGF=0")
	return err
}

// UCS2Charset selects the UCS-2 character set (AT+CSCS="UCS2").
func (d *Device) UCS2Charset() error {
	_, err := d.Send(`AT+CSCS="UCS2"`)
	return err
}

// OperatorInfo sends AT+COPS? and returns the quoted operator name.
func (d *Device) OperatorInfo() (string, error) {
	reply, err := d.Send("AT+COPS?")
	if err != nil {
		return "", err
	}
	if !strings.Contains(reply, "+COPS:") {
		return "", ErrParseReport
	}
	name := quoted(reply)
	if name == "" {
		return "", ErrParseReport
	}
	return name, nil
}

// MessageCount sends AT+CPMS? and returns the second comma-separated
// integer of the +CPMS: line (the number of messages currently stored).
func (d *Device) MessageCount() (int, error) {
	reply, err := d.Send("AT+CPMS?")
	if err != nil {
		return 0, err
	}
	line := firstLineContaining(reply, "+CPMS:")
	if line == "" {
		return 0, ErrParseReport
	}
	fields := strings.Split(strings.TrimPrefix(line, "+CPMS:"), ",")
	if len(fields) < 2 {
		return 0, ErrParseReport
	}
	n, err := parseUint(fields[1])
	if err != nil {
		return 0, ErrParseReport
	}
	return int(n), nil
}

// ReadOne sends AT+CMGR=<index> and returns the decoded PDU octets from the
// hex line following +CMGR:.
func (d *Device) ReadOne(index int) ([]byte, error) {
	reply, err := d.Send(fmt.Sprintf("AT+CMGR=%d", index))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(reply, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "+CMGR:") && i+1 < len(lines) {
			return byteutil.Hex2Bin(strings.TrimSpace(lines[i+1])), nil
		}
	}
	return nil, ErrParseReport
}

// ListAll sends AT+CMGL=4 and returns the PDU octets of every message,
// keyed by SIM index.
func (d *Device) ListAll() (map[int][]byte, error) {
	reply, err := d.Send("AT+CMGL=4")
	if err != nil {
		return nil, err
	}
	result := make(map[int][]byte)
	lines := strings.Split(reply, "\n")
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "+CMGL:") {
			continue
		}
		header := strings.TrimPrefix(lines[i], "+CMGL:")
		fields := strings.Split(header, ",")
		if len(fields) < 1 || i+1 >= len(lines) {
			return nil, ErrParseReport
		}
		n, err := parseUint(fields[0])
		if err != nil {
			return nil, ErrParseReport
		}
		result[int(n)] = byteutil.Hex2Bin(strings.TrimSpace(lines[i+1]))
		i++
	}
	return result, nil
}

// DeleteOne sends AT+CMGD=<index> to delete a single message.
func (d *Device) DeleteOne(index int) error {
	_, err := d.Send(fmt.Sprintf("AT+CMGD=%d", index))
	return err
}

// DeleteAll sends AT+CMGD=1,4 to delete every message on the SIM.
func (d *Device) DeleteAll() error {
	_, err := d.Send("AT+CMGD=1,4")
	return err
}

// ReadContact sends AT+CPBR=<index> and returns the quoted phone number and
// contact name.
func (d *Device) ReadContact(index int) (phone, name string, err error) {
	reply, err := d.Send(fmt.Sprintf("AT+CPBR=%d", index))
	if err != nil {
		return "", "", err
	}
	line := firstLineContaining(reply, "+CPBR:")
	if line == "" {
		return "", "", ErrParseReport
	}
	body := strings.TrimPrefix(line, "+CPBR:")
	phone, consumed := byteutil.CopyQuoted(body)
	rest := body[consumed:]
	name, _ = byteutil.CopyQuoted(rest)
	return phone, name, nil
}

func firstLineContaining(reply, token string) string {
	for _, line := range strings.Split(reply, "\n") {
		if strings.Contains(line, token) {
			return line
		}
	}
	return ""
}
