package wordlist

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var catRows = []RawEntry{
	{ID: "1", Clue: "Feline pet", Answer: "CAT"},
	{ID: "2", Clue: "feline, pet!", Answer: "cat"},
	{ID: "3", Clue: "Big cat", Answer: "LION"},
}

func encodeString(t *testing.T, list WordList) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, list))
	return buf.String()
}

func TestAggregateEndToEnd(t *testing.T) {
	list := Aggregate(catRows)

	assert.Equal(t, WordList{
		{Word: "cat", Clues: []string{"Feline pet"}},
		{Word: "lion", Clues: []string{"Big cat"}},
	}, list.MinClues(1))

	expected := `[
  [
    "cat",
    [
      "Feline pet"
    ]
  ],
  [
    "lion",
    [
      "Big cat"
    ]
  ]
]
`
	assert.Equal(t, expected, encodeString(t, list.MinClues(1)))
	assert.Equal(t, "[]\n", encodeString(t, list.MinClues(2)))
}

func TestAggregateFirstClueWins(t *testing.T) {
	list := Aggregate([]RawEntry{
		{Clue: "  Feline pet  ", Answer: "cat"},
		{Clue: "FELINE PET", Answer: "Cat"},
		{Clue: "Mouser", Answer: "c-a-t"},
		{Clue: "feline...pet", Answer: "CAT"},
	})

	require.Len(t, list, 1)
	assert.Equal(t, "cat", list[0].Word)
	assert.Equal(t, []string{"Feline pet", "Mouser"}, list[0].Clues)
}

func TestAggregateKeepsWordsWithoutClues(t *testing.T) {
	a := NewAggregator()
	assert.True(t, a.Add(RawEntry{Clue: "   ", Answer: "emu"}))
	assert.True(t, a.Add(RawEntry{Clue: "?!", Answer: "gnu"}))
	assert.False(t, a.Add(RawEntry{Clue: "A number", Answer: "42"}))
	assert.False(t, a.Add(RawEntry{Clue: "Nothing", Answer: ""}))

	list := a.List()
	assert.Equal(t, []string{"emu", "gnu"}, list.Words())
	for _, e := range list {
		assert.NotNil(t, e.Clues)
		assert.Empty(t, e.Clues)
	}
	assert.Empty(t, list.MinClues(1))

	stats := a.Stats()
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 2, stats.RejectedAnswers)
	assert.Equal(t, 2, stats.EmptyClues)
	assert.Equal(t, 2, stats.Words)
	assert.Equal(t, 0, stats.Clues)

	assert.Equal(t, "[\n  [\n    \"emu\",\n    []\n  ],\n  [\n    \"gnu\",\n    []\n  ]\n]\n", encodeString(t, list))
}

func TestAggregateSortsByWord(t *testing.T) {
	list := Aggregate([]RawEntry{
		{Clue: "z", Answer: "zebra"},
		{Clue: "a", Answer: "aardvark"},
		{Clue: "m", Answer: "Moose"},
		{Clue: "b", Answer: "ab"},
		{Clue: "c", Answer: "a"},
	})
	assert.Equal(t, []string{"a", "aardvark", "ab", "moose", "zebra"}, list.Words())

	locale := Aggregate([]RawEntry{
		{Clue: "z", Answer: "zebra"},
		{Clue: "a", Answer: "aardvark"},
		{Clue: "m", Answer: "Moose"},
		{Clue: "b", Answer: "ab"},
		{Clue: "c", Answer: "a"},
	}, WithCollation(CollationLocale))
	assert.Equal(t, list.Words(), locale.Words())
}

func TestAggregateDedupInvariant(t *testing.T) {
	clues := []string{"Feline pet", "feline pet", "FELINE-PET", "Big cat", "big  cat!", "Tabby", "tabby?", "Tom"}
	var rows []RawEntry
	for i := 0; i < 40; i++ {
		rows = append(rows, RawEntry{
			ID:     fmt.Sprint(i),
			Clue:   clues[i%len(clues)],
			Answer: []string{"cat", "CAT!", "lion", "tiger"}[i%4],
		})
	}

	for _, e := range Aggregate(rows) {
		seen := map[string]bool{}
		for _, c := range e.Clues {
			key := utils.NormalizeClue(c)
			assert.False(t, seen[key], "duplicate key %q for %s", key, e.Word)
			seen[key] = true
		}
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	rows := []RawEntry{
		{Clue: "Ocean", Answer: "SEA"},
		{Clue: "See 1-Across", Answer: "sea"},
		{Clue: "Letter after bee", Answer: "sea"},
		{Clue: "Body of water", Answer: "LAKE"},
		{Clue: "Pond's big brother", Answer: "lake"},
		{Clue: "Fish eggs", Answer: "ROE"},
	}
	first := encodeString(t, Aggregate(rows))
	second := encodeString(t, Aggregate(rows))
	assert.Equal(t, first, second)
}

func TestAggregateListIsSnapshot(t *testing.T) {
	a := NewAggregator()
	a.Add(RawEntry{Clue: "One", Answer: "uno"})
	before := a.List()
	a.Add(RawEntry{Clue: "Card game", Answer: "uno"})

	assert.Equal(t, []string{"One"}, before[0].Clues)
	assert.Equal(t, []string{"One", "Card game"}, a.List()[0].Clues)
}

func TestAggregateProgress(t *testing.T) {
	var calls []int
	a := NewAggregator(WithProgress(2, func(s Stats) {
		calls = append(calls, s.Rows)
	}))
	for i := 0; i < 5; i++ {
		a.Add(RawEntry{Clue: "clue", Answer: "word"})
	}
	a.List()
	assert.Equal(t, []int{2, 4, 5}, calls)
}

func TestMinCluesMonotonic(t *testing.T) {
	list := WordList{
		{Word: "a", Clues: []string{"1"}},
		{Word: "b", Clues: []string{"1", "2"}},
		{Word: "c", Clues: []string{}},
		{Word: "d", Clues: []string{"1", "2", "3"}},
	}
	for k1 := 1; k1 <= 4; k1++ {
		for k2 := k1; k2 <= 4; k2++ {
			wide := map[string]bool{}
			for _, w := range list.MinClues(k1).Words() {
				wide[w] = true
			}
			for _, w := range list.MinClues(k2).Words() {
				assert.True(t, wide[w], "%s in MinClues(%d) but not MinClues(%d)", w, k2, k1)
			}
		}
	}
	assert.Equal(t, []string{"a", "b", "d"}, list.MinClues(1).Words())
	assert.Empty(t, list.MinClues(list.MaxClues()+1))
	assert.Len(t, list, 4)
}
