// Package cli implements the interactive browse loop over an in-process host.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/bastiangx/cluelist/pkg/server"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	clueStyle = lipgloss.NewStyle().Italic(true).Faint(true)
	headStyle = lipgloss.NewStyle().Bold(true)
)

const helpText = `commands:
  min N [N...]   filter by minimum clue count, only the last value is shown
  len L [L...]   list words of the given lengths
  stats          dataset counters
  help           this text
  quit           exit`

// Options control what the browse loop starts with and how much it prints.
type Options struct {
	DefaultMin     int
	DefaultLengths []int
	MaxWordsShown  int
	// Wait bounds how long a command waits for its response.
	Wait time.Duration
}

// InputHandler reads commands line by line, turns them into host requests
// and prints the responses that answer the latest request of their kind.
type InputHandler struct {
	host   *server.Host
	client *server.Client
	in     io.Reader
	out    io.Writer
	opts   Options

	lengths      []int
	requestCount int
	dropped      int
}

// NewInputHandler creates a handler driving host.
func NewInputHandler(host *server.Host, in io.Reader, out io.Writer, opts Options) *InputHandler {
	if opts.MaxWordsShown < 1 {
		opts.MaxWordsShown = 40
	}
	if opts.Wait <= 0 {
		opts.Wait = 30 * time.Second
	}
	return &InputHandler{
		host:    host,
		client:  server.NewClient(host),
		in:      in,
		out:     out,
		opts:    opts,
		lengths: opts.DefaultLengths,
	}
}

// Start runs the host, loads list into it and processes commands until quit
// or the end of input.
func (h *InputHandler) Start(ctx context.Context, list wordlist.WordList) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- h.host.Run(ctx) }()
	defer func() {
		h.host.Close()
		cancel()
		<-done
	}()

	if _, err := h.client.Init(list); err != nil {
		return err
	}
	if err := h.await(ctx); err != nil {
		return err
	}
	if h.opts.DefaultMin > 1 {
		h.handleInput(ctx, "min "+strconv.Itoa(h.opts.DefaultMin))
	}
	if len(h.lengths) > 0 {
		h.handleInput(ctx, "len "+joinInts(h.lengths))
	}

	fmt.Fprintln(h.out, "type a command and press Enter (help for a list, quit to exit):")
	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.handleInput(ctx, line)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// handleInput runs one command line.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	start := time.Now()
	var err error
	switch cmd {
	case "min":
		err = h.filter(ctx, args)
	case "len":
		err = h.words(ctx, args)
	case "stats":
		if _, err = h.client.Stats(); err == nil {
			err = h.await(ctx)
		}
	case "help":
		fmt.Fprintln(h.out, helpText)
		return
	default:
		fmt.Fprintf(h.out, "unknown command %q, try help\n", cmd)
		return
	}
	if err != nil {
		log.Errorf("%s: %v", cmd, err)
		return
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), line)
}

// filter posts one filter request per argument back to back. Every one is
// answered but only the last is printed.
func (h *InputHandler) filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: min N [N...]")
	}
	for _, arg := range args {
		if _, err := h.client.Filter(arg); err != nil {
			return err
		}
	}
	if err := h.await(ctx); err != nil {
		return err
	}
	if len(h.lengths) > 0 {
		return h.words(ctx, nil)
	}
	return nil
}

// words selects lengths and asks for their words. No args reuses the last selection.
func (h *InputHandler) words(ctx context.Context, args []string) error {
	if len(args) > 0 {
		lengths := make([]int, 0, len(args))
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid length %q", arg)
			}
			lengths = append(lengths, n)
		}
		h.lengths = lengths
	}
	if len(h.lengths) == 0 {
		return fmt.Errorf("usage: len L [L...]")
	}
	if _, err := h.client.GetWords(h.lengths); err != nil {
		return err
	}
	return h.await(ctx)
}

// await reads responses until one answers the latest request of its kind,
// dropping superseded ones on the way.
func (h *InputHandler) await(ctx context.Context) error {
	timeout := time.NewTimer(h.opts.Wait)
	defer timeout.Stop()

	for {
		select {
		case resp, ok := <-h.host.Responses():
			if !ok {
				return server.ErrHostClosed
			}
			if !h.client.Accept(resp) {
				h.dropped++
				log.Debugf("Dropping stale %s #%d", resp.Type, resp.RequestID)
				continue
			}
			h.render(resp)
			return nil
		case <-timeout.C:
			return fmt.Errorf("no response after %v", h.opts.Wait)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Dropped returns how many stale responses were discarded.
func (h *InputHandler) Dropped() int {
	return h.dropped
}

func (h *InputHandler) render(resp server.Response) {
	switch resp.Type {
	case server.TypeInitialized:
		fmt.Fprintf(h.out, "%s %s words, %s with at least 1 clue\n",
			headStyle.Render("loaded"), utils.FormatWithCommas(resp.Total), utils.FormatWithCommas(resp.Count))
		h.renderLengths(resp)
	case server.TypeFiltered:
		fmt.Fprintf(h.out, "%s %s words with at least %d clue(s)\n",
			headStyle.Render("filtered"), utils.FormatWithCommas(resp.Count), resp.MinClueCount)
		h.renderLengths(resp)
	case server.TypeWordsReady:
		h.renderWords(resp)
	case server.TypeStats:
		fmt.Fprintln(h.out, headStyle.Render("stats"))
		for _, key := range []string{"totalWords", "filteredWords", "minClueCount", "maxClueCount", "cachedViews", "cacheHits", "cacheMisses"} {
			fmt.Fprintf(h.out, "  %-14s %s\n", key, utils.FormatWithCommas(resp.Stats[key]))
		}
	case server.TypeError:
		fmt.Fprintf(h.out, "error: %s\n", resp.Message)
	}
}

func (h *InputHandler) renderLengths(resp server.Response) {
	if len(resp.Lengths) == 0 {
		return
	}
	parts := make([]string, 0, len(resp.Lengths))
	for _, lc := range resp.Lengths {
		parts = append(parts, fmt.Sprintf("%d:%s", lc.Length, utils.FormatWithCommas(lc.Count)))
	}
	fmt.Fprintf(h.out, "  lengths %s\n", strings.Join(parts, " "))
}

func (h *InputHandler) renderWords(resp server.Response) {
	for _, n := range h.lengths {
		group := resp.Words[n]
		fmt.Fprintf(h.out, "%s %s words\n", headStyle.Render(fmt.Sprintf("%d letters:", n)), utils.FormatWithCommas(len(group)))
		for i, entry := range group {
			if i == h.opts.MaxWordsShown {
				fmt.Fprintf(h.out, "  ... %s more\n", utils.FormatWithCommas(len(group)-i))
				break
			}
			fmt.Fprintf(h.out, "  %-12s %s\n", wordStyle.Render(entry.Word), clueStyle.Render(resp.ClueMap[entry.Word]))
		}
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
