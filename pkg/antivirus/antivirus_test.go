package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReply(t *testing.T) {
	res, err := parseReply("stream: OK")
	require.NoError(t, err)
	assert.False(t, res.Infected)

	res, err = parseReply("stream: Eicar-Test-Signature FOUND")
	require.NoError(t, err)
	assert.True(t, res.Infected)
	assert.Equal(t, "Eicar-Test-Signature", res.ThreatName)

	_, err = parseReply("INSTREAM size limit exceeded. ERROR")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWriteStreamChunks(t *testing.T) {
	var buf bytes.Buffer
	data := bytes.Repeat([]byte{'x'}, chunkSize+10)
	require.NoError(t, writeStream(&buf, data))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte("zINSTREAM\x00")))
	out = out[len("zINSTREAM\x00"):]

	var sizes []uint32
	for len(out) >= 4 {
		n := binary.BigEndian.Uint32(out[:4])
		sizes = append(sizes, n)
		out = out[4+int(n):]
	}
	assert.Equal(t, []uint32{chunkSize, 10, 0}, sizes)
	assert.Empty(t, out)
}

// fakeClamd answers one connection with reply after draining the request.
func fakeClamd(t *testing.T, reply string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		_, _ = io.Copy(io.Discard, conn)
		_, _ = conn.Write([]byte(reply + "\x00"))
	}()
	return ln.Addr().String()
}

func TestClamAVScan(t *testing.T) {
	ctx := context.Background()

	res, err := NewClamAV(fakeClamd(t, "stream: OK"), time.Second).Scan(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.False(t, res.Infected)

	res, err = NewClamAV(fakeClamd(t, "stream: Eicar-Test-Signature FOUND"), time.Second).Scan(ctx, []byte("X5O!P%@AP"))
	require.NoError(t, err)
	assert.True(t, res.Infected)

	assert.NoError(t, NewClamAV(fakeClamd(t, "PONG"), time.Second).Ping(ctx))
}

func TestClamAVUnreachable(t *testing.T) {
	_, err := NewClamAV("127.0.0.1:1", 200*time.Millisecond).Scan(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
