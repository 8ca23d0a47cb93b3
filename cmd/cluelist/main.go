// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the cluelist command: a crossword clue converter and a
word list host.

cluelist turns a raw clue dataset (CSV rows of id, clue, answer) into a
deduplicated word list where each word carries its distinct clues, and serves
that list to other processes for interactive filtering by clue count and word
length.

# Usage

Convert the dataset with the defaults from the config file:

	cluelist convert

Keep only words with at least three distinct clues:

	cluelist convert 3

Read and write other paths and sort with the English collation:

	cluelist convert --input data/clues.csv --output out/words.json --collation locale

Serve a word list over stdin/stdout with the JSON line codec:

	cluelist serve --codec json --source web/words.json

Browse a word list or a raw CSV interactively:

	cluelist browse web/words.json

# Converting

Answers are reduced to their ASCII letters and lowercased. Rows whose answer
has no letters are skipped. Clues are compared by a normalized key (lowercase,
runs of anything but letters and digits collapsed to one space) and the first
spelling seen for a key is kept. Words are written sorted, one
[word, [clue, ...]] pair per entry:

	[
	  [
	    "cat",
	    [
	      "Feline pet"
	    ]
	  ]
	]

The minimum clue count argument accepts anything; values that are not a number
of at least 1 become 1 and fractions are floored.

# Serving

The serve command reads requests from stdin and writes one response per handled
request to stdout, in order. Logs go to stderr. The default codec streams
msgpack maps; --codec json reads and writes one JSON object per line. See the
server package for the message set.

	{"type": "init", "source": "web/words.json"}
	{"type": "filter", "minClueCount": 2, "requestId": 1}
	{"type": "getWords", "lengths": [5, 6], "requestId": 2}

Prometheus metrics are served on /metrics when --metrics-addr or
server.metrics_addr is set.

# Browsing

The browse command loads a dataset into an in-process host and reads commands:

	min 2        words with at least two clues
	min 2 3 4    send three filters, show only the answer to the last
	len 5 6      five and six letter words with one clue each
	stats        dataset counters

# Configuration

Defaults live in a TOML file created on first run at
~/.config/cluelist/config.toml. Flags override it.

	[convert]
	input = "valid.csv"
	output = "web/words.json"
	min_clue_count = 1
	skip_header = true
	progress_every = 100000
	collation = "codepoint"

	[server]
	codec = "msgpack"
	outbox_size = 64
	metrics_addr = ""

	[cli]
	default_min = 1
	default_lengths = []
	max_words_shown = 40

A file with wrongly typed values keeps every value that is still usable.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "cluelist"
	gh      = "https://github.com/bastiangx/cluelist"
)

// sigContext returns a context cancelled on interrupt or SIGTERM.
func sigContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// main only wires signals to the command tree.
func main() {
	ctx, stop := sigContext()
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
