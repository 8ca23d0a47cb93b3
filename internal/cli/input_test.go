package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/cluelist/pkg/server"
	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func zooList() wordlist.WordList {
	return wordlist.WordList{
		{Word: "ant", Clues: []string{"Picnic pest"}},
		{Word: "bee", Clues: []string{"Spelling contest", "Honey maker", "Buzzer"}},
		{Word: "cat", Clues: []string{"Feline pet", "Mouser"}},
		{Word: "emu", Clues: []string{}},
		{Word: "lion", Clues: []string{"Big cat", "Pride member"}},
	}
}

func runSession(t *testing.T, input string, opts Options) (string, *InputHandler) {
	t.Helper()
	var out bytes.Buffer
	opts.Wait = 5 * time.Second
	h := NewInputHandler(server.NewHost(), strings.NewReader(input), &out, opts)
	require.NoError(t, h.Start(context.Background(), zooList()))
	return out.String(), h
}

func TestBrowseSession(t *testing.T) {
	out, h := runSession(t, "min 2 3\nlen 3\nstats\nbogus\nquit\nmin 1\n", Options{})

	assert.Contains(t, out, "5 words, 4 with at least 1 clue")
	assert.Contains(t, out, "1 words with at least 3 clue(s)")
	assert.NotContains(t, out, "with at least 2 clue(s)")
	assert.Equal(t, 1, h.Dropped())

	assert.Contains(t, out, "3 letters:")
	assert.Contains(t, out, "bee")
	assert.Contains(t, out, "Spelling contest")
	assert.NotContains(t, out, "Picnic pest")

	assert.Contains(t, out, "totalWords")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.NotContains(t, out, "with at least 1 clue(s)")
}

func TestBrowseDefaults(t *testing.T) {
	out, _ := runSession(t, "", Options{DefaultMin: 2, DefaultLengths: []int{4}})

	assert.Contains(t, out, "3 words with at least 2 clue(s)")
	assert.Contains(t, out, "4 letters:")
	assert.Contains(t, out, "Pride member")
}

func TestBrowseTruncatesLongGroups(t *testing.T) {
	out, _ := runSession(t, "len 3\n", Options{MaxWordsShown: 1})

	assert.Contains(t, out, "ant")
	assert.Contains(t, out, "... 2 more")
	assert.NotContains(t, out, "Feline pet")
}

func TestBrowseRejectsBadLengths(t *testing.T) {
	out, _ := runSession(t, "len x\nlen\n", Options{})
	assert.NotContains(t, out, "letters:")
}
