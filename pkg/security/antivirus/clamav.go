package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// clamd rejects INSTREAM chunks above StreamMaxLength (25 MB by default);
// resumes are far below that so one chunk is sent.
const pingTimeout = 5 * time.Second

// ClamAV talks to a clamd daemon over TCP ("host:3310") or a unix socket
// ("/var/run/clamav/clamd.sock").
type ClamAV struct {
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAV)(nil)

func NewClamAV(address string, timeout time.Duration) *ClamAV {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAV{address: address, timeout: timeout}
}

func (c *ClamAV) Name() string { return "clamav" }

func (c *ClamAV) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAV) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, pingTimeout)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Scan streams data with zINSTREAM: one length-prefixed chunk followed by a
// zero-length terminator.
func (c *ClamAV) Scan(ctx context.Context, name string, data []byte) Verdict {
	v := Verdict{Scanner: c.Name()}
	fail := func(step string, err error) Verdict {
		v.Infected = true
		v.Err = fmt.Errorf("clamd %s for %s: %w", step, name, err)
		return v
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail("connect", err)
	}
	defer conn.Close()

	var frame bytes.Buffer
	frame.WriteString("zINSTREAM\x00")
	_ = binary.Write(&frame, binary.BigEndian, uint32(len(data)))
	frame.Write(data)
	frame.Write([]byte{0, 0, 0, 0})
	if _, err := conn.Write(frame.Bytes()); err != nil {
		return fail("write", err)
	}

	reply := make([]byte, 1024)
	n, err := conn.Read(reply)
	if err != nil && n == 0 {
		return fail("read", err)
	}
	return parseReply(v, string(reply[:n]))
}

// parseReply reads "stream: OK", "stream: <threat> FOUND" or
// "stream: <reason> ERROR".
func parseReply(v Verdict, reply string) Verdict {
	reply = strings.TrimRight(reply, "\x00\r\n ")
	body := reply
	if _, after, ok := strings.Cut(reply, ":"); ok {
		body = strings.TrimSpace(after)
	}
	switch {
	case strings.HasSuffix(body, "FOUND"):
		v.Infected = true
		v.Threat = strings.TrimSpace(strings.TrimSuffix(body, "FOUND"))
	case strings.HasSuffix(body, "ERROR"):
		v.Infected = true
		v.Err = fmt.Errorf("clamd: %s", body)
	case body != "OK":
		v.Infected = true
		v.Err = fmt.Errorf("clamd: unexpected reply %q", reply)
	}
	return v
}
