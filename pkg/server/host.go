package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/cluelist/internal/logger"
	"github.com/bastiangx/cluelist/pkg/query"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const defaultOutboxSize = 64

// handlerFunc handles one request type. A nil response with a nil error
// means nothing is sent back.
type handlerFunc func(h *Host, req Request) (*Response, error)

// handlers is the dispatch table, keyed by request type.
var handlers = map[string]handlerFunc{
	TypeInit:     handleInit,
	TypeFilter:   handleFilter,
	TypeGetWords: handleGetWords,
	TypeStats:    handleStats,
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithOutboxSize sets how many responses may wait for a reader before Run blocks.
func WithOutboxSize(n int) HostOption {
	return func(h *Host) {
		if n > 0 {
			h.outboxSize = n
		}
	}
}

// WithEngine swaps the query engine, mainly for tests.
func WithEngine(e query.IEngine) HostOption {
	return func(h *Host) {
		h.engine = e
	}
}

// Host is a single threaded actor that owns a dataset. Requests go into an
// unbounded mailbox and are handled strictly one after another by Run.
type Host struct {
	id         string
	engine     query.IEngine
	log        *log.Logger
	outboxSize int

	mu      sync.Mutex
	mailbox []Request
	closed  bool
	wake    chan struct{}

	out chan Response
}

// NewHost creates a host with an empty dataset
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		id:         uuid.NewString(),
		outboxSize: defaultOutboxSize,
		wake:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.engine == nil {
		h.engine = query.NewEngine()
	}
	h.log = logger.ForSession("host", h.id)
	h.out = make(chan Response, h.outboxSize)
	return h
}

// ID returns the session id of the host.
func (h *Host) ID() string {
	return h.id
}

// Post enqueues a request. It never waits for the request to be handled.
func (h *Host) Post(req Request) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHostClosed
	}
	h.mailbox = append(h.mailbox, req)
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops accepting requests. Run finishes the queued ones and then returns.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Responses returns the channel responses are delivered on. It is closed when Run returns.
func (h *Host) Responses() <-chan Response {
	return h.out
}

// Pending returns the number of queued requests.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.mailbox)
}

// Run processes the mailbox until Close was called and the queue is drained,
// or ctx is done. Run must be called once.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.out)
	h.log.Debug("Host started")

	for {
		req, ok := h.next(ctx)
		if !ok {
			h.log.Debug("Host stopped")
			return ctx.Err()
		}
		resp, ok := h.Handle(req)
		if !ok {
			continue
		}
		select {
		case h.out <- resp:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// next blocks until a request is available. It returns false once the host
// is closed and drained, or ctx is done.
func (h *Host) next(ctx context.Context) (Request, bool) {
	for {
		h.mu.Lock()
		if len(h.mailbox) > 0 {
			req := h.mailbox[0]
			h.mailbox[0] = Request{}
			h.mailbox = h.mailbox[1:]
			if len(h.mailbox) == 0 {
				// drop the drained backing array
				h.mailbox = nil
			}
			h.mu.Unlock()
			return req, true
		}
		closed := h.closed
		h.mu.Unlock()

		if closed {
			return Request{}, false
		}
		select {
		case <-h.wake:
		case <-ctx.Done():
			return Request{}, false
		}
	}
}

// Handle runs a single request synchronously on the caller's goroutine and
// returns its response. ok is false for messages that get no response.
// Run is the only caller while a host is running.
func (h *Host) Handle(req Request) (resp Response, ok bool) {
	label := metricLabel(req.Type)

	if req.decodeErr != nil {
		errorsTotal.WithLabelValues(label).Inc()
		h.log.Warnf("Invalid request frame: %v", req.decodeErr)
		return errorResponse(req.RequestID, fmt.Errorf("invalid request: %w", req.decodeErr)), true
	}

	handler, known := handlers[req.Type]
	if !known {
		ignoredTotal.Inc()
		h.log.Debugf("Ignoring message of type %q", req.Type)
		return Response{}, false
	}

	start := time.Now()
	defer func() {
		handleDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(label).Inc()
		if r := recover(); r != nil {
			h.log.Errorf("Handler %s panicked: %v", req.Type, r)
			errorsTotal.WithLabelValues(label).Inc()
			resp, ok = errorResponse(req.RequestID, fmt.Errorf("%s failed: %v", req.Type, r)), true
		}
	}()

	out, err := handler(h, req)
	if err != nil {
		h.log.Errorf("Handling %s: %v", req.Type, err)
		errorsTotal.WithLabelValues(label).Inc()
		return errorResponse(req.RequestID, err), true
	}
	if out == nil {
		return Response{}, false
	}
	h.log.Debugf("Handled %s #%d in %v", req.Type, req.RequestID, time.Since(start))
	return *out, true
}

func handleInit(h *Host, req Request) (*Response, error) {
	var list wordlist.WordList
	if req.Source != "" {
		loaded, err := wordlist.ReadFile(req.Source)
		if err != nil {
			return nil, fmt.Errorf("load word list: %w", err)
		}
		list = loaded
	} else {
		list = wordlist.Dedupe(req.Entries)
	}

	h.engine.SetDataset(list)
	filtered := h.engine.Filtered()
	h.log.Infof("Dataset loaded: %d words, %d with clues", len(list), len(filtered))

	resp := &Response{
		Type:         TypeInitialized,
		RequestID:    req.RequestID,
		MinClueCount: 1,
		Count:        len(filtered),
		Total:        len(list),
		Lengths:      query.LengthHistogram(filtered),
	}
	if req.WithEntries {
		resp.Entries = filtered
	}
	return resp, nil
}

func handleFilter(h *Host, req Request) (*Response, error) {
	minClueCount := req.MinClueCount.Value()
	filtered := h.engine.Filter(minClueCount)

	resp := &Response{
		Type:         TypeFiltered,
		RequestID:    req.RequestID,
		MinClueCount: minClueCount,
		Count:        len(filtered),
		Lengths:      query.LengthHistogram(filtered),
	}
	if req.WithEntries {
		resp.Entries = filtered
	}
	return resp, nil
}

func handleGetWords(h *Host, req Request) (*Response, error) {
	words, clueMap := h.engine.WordsByLengths(req.Lengths)
	count := 0
	for _, group := range words {
		count += len(group)
	}
	return &Response{
		Type:      TypeWordsReady,
		RequestID: req.RequestID,
		Count:     count,
		Words:     words,
		ClueMap:   clueMap,
	}, nil
}

func handleStats(h *Host, req Request) (*Response, error) {
	stats := h.engine.Stats()
	stats["pending"] = h.Pending()
	return &Response{
		Type:      TypeStats,
		RequestID: req.RequestID,
		Count:     stats["filteredWords"],
		Stats:     stats,
	}, nil
}
