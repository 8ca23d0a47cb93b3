/*
Package server hosts the clue query engine behind a message protocol.

A Host owns one dataset and processes messages one at a time from a FIFO
mailbox. Every handled request produces exactly one response, in the order the
requests were received. Callers never wait on the computation itself: Post only
enqueues.

# Messages

Requests and responses carry a type and named fields. The same field names are
used for the msgpack and the JSON line codecs.

Load a dataset inline or from a word list file written by the convert command:

	{"type": "init", "entries": [["cat", ["Feline pet"]], ["lion", ["Big cat"]]]}
	{"type": "init", "source": "web/words.json"}

The host answers with the default view (words with at least one clue):

	{"type": "initialized", "requestId": 0, "minClueCount": 1, "count": 2, "total": 2, "lengthMetadata": [{"length": 3, "count": 1}, {"length": 4, "count": 1}]}

Change the clue threshold. The requestId is echoed back unchanged:

	{"type": "filter", "minClueCount": 2, "requestId": 7}
	{"type": "filtered", "requestId": 7, "minClueCount": 2, "count": 0}

Fetch words of some lengths with one representative clue each:

	{"type": "getWords", "lengths": [3], "requestId": 8}
	{"type": "wordsReady", "requestId": 8, "count": 1, "words": {"3": [["cat", ["Feline pet"]]]}, "clueMap": {"cat": "Feline pet"}}

Unknown types are ignored without a response. A request that fails produces an
error response and the host keeps serving:

	{"type": "error", "requestId": 0, "count": 0, "message": "load word list: open web/words.json: no such file or directory"}

# Staleness

Callers may send several filter requests before the first answer arrives. All
of them are computed and answered in order; the caller keeps the id of the
latest request it issued and drops responses carrying any other id. Client
implements that bookkeeping.
*/
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/bastiangx/cluelist/pkg/query"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/vmihailenco/msgpack/v5"
)

// Request types
const (
	TypeInit     = "init"
	TypeFilter   = "filter"
	TypeGetWords = "getWords"
	TypeStats    = "stats"
)

// Response types
const (
	TypeInitialized = "initialized"
	TypeFiltered    = "filtered"
	TypeWordsReady  = "wordsReady"
	TypeError       = "error"
)

// ErrHostClosed is returned by Post once the host stopped accepting messages.
var ErrHostClosed = errors.New("host closed")

// Request is an inbound message. Only the fields relevant to Type are read.
type Request struct {
	Type         string            `msgpack:"type" json:"type"`
	Entries      wordlist.WordList `msgpack:"entries,omitempty" json:"entries,omitempty"`
	Source       string            `msgpack:"source,omitempty" json:"source,omitempty"`
	MinClueCount Threshold         `msgpack:"minClueCount" json:"minClueCount"`
	Lengths      []int             `msgpack:"lengths,omitempty" json:"lengths,omitempty"`
	RequestID    int64             `msgpack:"requestId" json:"requestId"`
	WithEntries  bool              `msgpack:"withEntries,omitempty" json:"withEntries,omitempty"`

	// decodeErr is set by transports for frames that could not be decoded
	decodeErr error
}

// Response is an outbound message.
type Response struct {
	Type         string                    `msgpack:"type" json:"type"`
	RequestID    int64                     `msgpack:"requestId" json:"requestId"`
	MinClueCount int                       `msgpack:"minClueCount,omitempty" json:"minClueCount,omitempty"`
	Count        int                       `msgpack:"count" json:"count"`
	Total        int                       `msgpack:"total,omitempty" json:"total,omitempty"`
	Lengths      []query.LengthCount       `msgpack:"lengthMetadata,omitempty" json:"lengthMetadata,omitempty"`
	Entries      wordlist.WordList         `msgpack:"entries,omitempty" json:"entries,omitempty"`
	Words        map[int]wordlist.WordList `msgpack:"words,omitempty" json:"words,omitempty"`
	ClueMap      map[string]string         `msgpack:"clueMap,omitempty" json:"clueMap,omitempty"`
	Stats        map[string]int            `msgpack:"stats,omitempty" json:"stats,omitempty"`
	Message      string                    `msgpack:"message,omitempty" json:"message,omitempty"`
}

// Threshold is a minClueCount as sent by a caller. Any value is accepted on
// the wire and coerced by Value, so bad input never fails a whole request.
type Threshold struct {
	raw any
}

// NewThreshold wraps a caller supplied value.
func NewThreshold(v any) Threshold {
	return Threshold{raw: v}
}

// Value returns the coerced threshold, always >= 1.
func (t Threshold) Value() int {
	return utils.EnsureMinClue(t.raw)
}

// Raw returns the value as received.
func (t Threshold) Raw() any {
	return t.raw
}

// MarshalJSON writes the raw value.
func (t Threshold) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

// UnmarshalJSON keeps whatever JSON value was sent.
func (t *Threshold) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("minClueCount: %w", err)
	}
	t.raw = v
	return nil
}

// EncodeMsgpack writes the raw value.
func (t Threshold) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(t.raw)
}

// DecodeMsgpack keeps whatever msgpack value was sent.
func (t *Threshold) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return fmt.Errorf("minClueCount: %w", err)
	}
	t.raw = v
	return nil
}

// errorResponse builds the error reply for a request.
func errorResponse(requestID int64, err error) Response {
	return Response{
		Type:      TypeError,
		RequestID: requestID,
		Message:   err.Error(),
	}
}
