package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxLineBytes bounds one encoded message, including the trailing newline.
const MaxLineBytes = 64 << 10

// ErrLineTooLong is returned when a message exceeds MaxLineBytes.
var ErrLineTooLong = errors.New("message exceeds maximum line length")

// lineReader reuses r if it already buffers, so that consecutive reads on
// one connection do not lose data.
func lineReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine decodes one newline terminated message. Numbers in untyped
// payloads are kept as json.Number so DecodeData sees them unchanged.
func readLine(r io.Reader, v any) error {
	br := lineReader(r)
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if len(line)+len(chunk) > MaxLineBytes {
			return ErrLineTooLong
		}
		line = append(line, chunk...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF && len(line) == 0 {
			return io.EOF
		}
		return fmt.Errorf("read error: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

// ReadRequest reads a single JSON request from the given reader.
// The JSON must be terminated by a newline. A clean end of stream is
// reported as io.EOF.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := readLine(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// WriteRequest encodes and writes a Request to the given writer.
func WriteRequest(w io.Writer, req *Request) error {
	return writeLine(w, req)
}

// ReadResponse reads a single JSON response from the reader.
func ReadResponse(r io.Reader) (*Response, error) {
	var resp Response
	if err := readLine(r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WriteResponse encodes and writes a Response to the writer.
func WriteResponse(w io.Writer, resp *Response) error {
	return writeLine(w, resp)
}

// DecodeData converts a generic payload (as produced by json.Unmarshal into
// interface{}) into the typed struct out. A nil payload leaves out untouched.
func DecodeData(data any, out any) error {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
