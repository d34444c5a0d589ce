package listener

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// lineConn adapts a line-oriented stream (telnet, ssh channel) to the
// frame interface: one JSON frame per line in, one per line out.
type lineConn struct {
	rw     io.ReadWriter
	reader *bufio.Reader
	closer io.Closer
}

func newLineConn(rw io.ReadWriter, closer io.Closer) *lineConn {
	crlf := newCRLFReadWriter(rw)
	return &lineConn{
		rw:     crlf,
		reader: bufio.NewReader(crlf),
		closer: closer,
	}
}

func (c *lineConn) ReadFrame() ([]byte, error) {
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return []byte(line), nil
	}
}

func (c *lineConn) WriteFrame(data []byte) error {
	_, err := c.rw.Write(append(data, '\n'))
	return err
}

func (c *lineConn) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// crlfWriter wraps an io.ReadWriter and converts \n to \r\n on writes.
// This is needed for protocols like telnet that require CRLF line endings.
type crlfWriter struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfWriter{rw: rw}
}

func (c *crlfWriter) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		// Normalize line endings: \r\n → \n, then standalone \r → \n.
		// Telnet sends \r\n, SSH with a PTY sends just \r.
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Return the original length so callers aren't confused by the size change
	return len(p), err
}
