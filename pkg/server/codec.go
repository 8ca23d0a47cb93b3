package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrMalformed marks a frame that could not be decoded but did not break the
// stream. Reading can continue with the next frame.
var ErrMalformed = errors.New("malformed frame")

// Codec frames requests and responses on a byte stream.
type Codec interface {
	Name() string
	NewDecoder(r io.Reader) RequestDecoder
	NewEncoder(w io.Writer) ResponseEncoder
}

// RequestDecoder reads one request per call. io.EOF ends the stream.
type RequestDecoder interface {
	Decode(req *Request) error
}

// ResponseEncoder writes one response per call and flushes it.
type ResponseEncoder interface {
	Encode(resp Response) error
}

// CodecByName returns the codec for a config value, "msgpack" or "json".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "msgpack", "":
		return MsgpackCodec{}, nil
	case "json":
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want msgpack or json)", name)
	}
}

// MsgpackCodec streams msgpack maps back to back. A frame that fails to
// decode leaves the stream in an unknown position, so it ends the session.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) NewDecoder(r io.Reader) RequestDecoder {
	return &msgpackDecoder{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

func (MsgpackCodec) NewEncoder(w io.Writer) ResponseEncoder {
	bw := bufio.NewWriter(w)
	return &msgpackEncoder{w: bw, enc: msgpack.NewEncoder(bw)}
}

type msgpackDecoder struct {
	dec *msgpack.Decoder
}

func (d *msgpackDecoder) Decode(req *Request) error {
	*req = Request{}
	if err := d.dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("decode msgpack request: %w", err)
	}
	return nil
}

type msgpackEncoder struct {
	w   *bufio.Writer
	enc *msgpack.Encoder
}

func (e *msgpackEncoder) Encode(resp Response) error {
	if err := e.enc.Encode(resp); err != nil {
		return fmt.Errorf("encode msgpack response: %w", err)
	}
	return e.w.Flush()
}

// JSONCodec reads and writes one JSON object per line. Blank lines are skipped.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) NewDecoder(r io.Reader) RequestDecoder {
	return &jsonDecoder{r: bufio.NewReader(r)}
}

func (JSONCodec) NewEncoder(w io.Writer) ResponseEncoder {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &jsonEncoder{w: bw, enc: enc}
}

type jsonDecoder struct {
	r *bufio.Reader
}

func (d *jsonDecoder) Decode(req *Request) error {
	for {
		line, err := d.r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if err != nil {
				if errors.Is(err, io.EOF) {
					return io.EOF
				}
				return err
			}
			continue
		}

		*req = Request{}
		if jsonErr := json.Unmarshal(line, req); jsonErr != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, jsonErr)
		}
		return nil
	}
}

type jsonEncoder struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(resp Response) error {
	if err := e.enc.Encode(resp); err != nil {
		return fmt.Errorf("encode json response: %w", err)
	}
	return e.w.Flush()
}
