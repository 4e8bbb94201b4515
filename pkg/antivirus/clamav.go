package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// clamd rejects streams above its StreamMaxLength; send in chunks well below it.
const chunkSize = 1 << 20

// ClamAV talks to a clamd daemon over TCP ("host:3310") or a Unix socket
// ("/var/run/clamav/clamd.sock").
type ClamAV struct {
	address string
	timeout time.Duration
	dialer  net.Dialer
}

var _ Scanner = (*ClamAV)(nil)

func NewClamAV(address string, timeout time.Duration) *ClamAV {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAV{address: address, timeout: timeout}
}

func (c *ClamAV) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAV) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping sends zPING and expects PONG.
func (c *ClamAV) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("%w: unexpected reply %q", ErrUnavailable, reply)
	}
	return nil
}

// Scan streams data with zINSTREAM.
func (c *ClamAV) Scan(ctx context.Context, data []byte) (Result, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	if err := writeStream(conn, data); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return Result{}, err
	}
	return parseReply(reply)
}

func writeStream(w io.Writer, data []byte) error {
	if _, err := w.Write([]byte("zINSTREAM\x00")); err != nil {
		return err
	}
	size := make([]byte, 4)
	for len(data) > 0 {
		n := min(len(data), chunkSize)
		binary.BigEndian.PutUint32(size, uint32(n))
		if _, err := w.Write(size); err != nil {
			return err
		}
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	// Zero-length chunk ends the stream
	binary.BigEndian.PutUint32(size, 0)
	_, err := w.Write(size)
	return err
}

func readReply(r io.Reader) (string, error) {
	buf, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil && len(buf) == 0 {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(string(bytes.TrimRight(buf, "\x00"))), nil
}

// parseReply reads "stream: OK", "stream: <name> FOUND" or "... ERROR".
func parseReply(reply string) (Result, error) {
	body := reply
	if _, after, ok := strings.Cut(reply, ":"); ok {
		body = strings.TrimSpace(after)
	}

	switch {
	case body == "OK":
		return Result{}, nil
	case strings.HasSuffix(body, " FOUND"):
		return Result{Infected: true, ThreatName: strings.TrimSuffix(body, " FOUND")}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnavailable, reply)
	}
}
