package server

import (
	"sync"

	"github.com/bastiangx/cluelist/pkg/wordlist"
)

// Poster accepts requests for asynchronous handling. Host implements it.
type Poster interface {
	Post(req Request) error
}

// Client is the caller side of the protocol. It numbers requests with
// increasing ids and remembers the latest id issued per request type, so
// responses to superseded requests can be told apart and dropped.
type Client struct {
	poster Poster

	mu     sync.Mutex
	nextID int64
	latest map[string]int64
}

// NewClient creates a client posting to p
func NewClient(p Poster) *Client {
	return &Client{
		poster: p,
		latest: make(map[string]int64),
	}
}

// send stamps req with the next id and records it as the latest of its type.
func (c *Client) send(req Request) (int64, error) {
	c.mu.Lock()
	c.nextID++
	req.RequestID = c.nextID
	c.latest[req.Type] = req.RequestID
	c.mu.Unlock()

	return req.RequestID, c.poster.Post(req)
}

// Init loads entries into the host.
func (c *Client) Init(entries wordlist.WordList) (int64, error) {
	return c.send(Request{Type: TypeInit, Entries: entries})
}

// Load asks the host to read a word list file.
func (c *Client) Load(source string) (int64, error) {
	return c.send(Request{Type: TypeInit, Source: source})
}

// Filter changes the clue threshold. Any value is accepted, the host coerces it.
func (c *Client) Filter(minClueCount any) (int64, error) {
	return c.send(Request{Type: TypeFilter, MinClueCount: NewThreshold(minClueCount)})
}

// GetWords asks for the words of the given lengths.
func (c *Client) GetWords(lengths []int) (int64, error) {
	return c.send(Request{Type: TypeGetWords, Lengths: lengths})
}

// Stats asks for the dataset counters.
func (c *Client) Stats() (int64, error) {
	return c.send(Request{Type: TypeStats})
}

// Latest returns the latest id issued for a request type, 0 if none.
func (c *Client) Latest(requestType string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest[requestType]
}

// Accept reports whether resp answers the latest request of its kind.
// Error responses are accepted when they answer the latest request of any kind.
func (c *Client) Accept(resp Response) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resp.Type == TypeError {
		for _, id := range c.latest {
			if id == resp.RequestID {
				return true
			}
		}
		return false
	}

	requestType, ok := requestTypeFor(resp.Type)
	if !ok {
		return false
	}
	return c.latest[requestType] == resp.RequestID
}

// requestTypeFor maps a response type to the request type that produces it.
func requestTypeFor(responseType string) (string, bool) {
	switch responseType {
	case TypeInitialized:
		return TypeInit, true
	case TypeFiltered:
		return TypeFilter, true
	case TypeWordsReady:
		return TypeGetWords, true
	case TypeStats:
		return TypeStats, true
	default:
		return "", false
	}
}
