package server

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Server connects a Host to a byte stream, typically stdin/stdout.
type Server struct {
	host   *Host
	codec  Codec
	reader io.Reader
	writer io.Writer
}

// NewServer creates a server that reads requests from r and writes responses to w
func NewServer(host *Host, codec Codec, r io.Reader, w io.Writer) *Server {
	return &Server{
		host:   host,
		codec:  codec,
		reader: r,
		writer: w,
	}
}

// Start runs the host until the input ends and every queued request has been
// answered, or until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	log.Debugf("Starting server with %s codec", s.codec.Name())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.host.Run(gctx)
	})
	g.Go(func() error {
		return s.writeResponses()
	})

	// A blocked read cannot be interrupted, so the reader is not part of the
	// group. It exits on EOF or when the host stops accepting posts.
	go s.readRequests()

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readRequests decodes frames and posts them until the stream ends.
func (s *Server) readRequests() {
	defer s.host.Close()

	dec := s.codec.NewDecoder(s.reader)
	for {
		var req Request
		err := dec.Decode(&req)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			log.Debug("Input closed")
			return
		case errors.Is(err, ErrMalformed):
			req = Request{decodeErr: err}
		default:
			log.Errorf("Reading requests: %v", err)
			_ = s.host.Post(Request{decodeErr: err})
			return
		}

		if err := s.host.Post(req); err != nil {
			log.Debugf("Dropping request, %v", err)
			return
		}
	}
}

// writeResponses encodes every response until the host closes its outbox.
func (s *Server) writeResponses() error {
	enc := s.codec.NewEncoder(s.writer)
	for resp := range s.host.Responses() {
		if err := enc.Encode(resp); err != nil {
			log.Errorf("Writing response: %v", err)
			return err
		}
	}
	return nil
}
