package query

import (
	"testing"

	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func sampleList() wordlist.WordList {
	return wordlist.WordList{
		{Word: "ant", Clues: []string{"Picnic pest"}},
		{Word: "bee", Clues: []string{"Spelling contest", "Honey maker", "Buzzer"}},
		{Word: "cat", Clues: []string{"Feline pet", "Mouser"}},
		{Word: "emu", Clues: []string{}},
		{Word: "lion", Clues: []string{"Big cat", "Pride member"}},
		{Word: "zebra", Clues: []string{"Striped animal"}},
	}
}

func TestSetDatasetDefaultsToOneClue(t *testing.T) {
	e := NewEngine()
	assert.Empty(t, e.Filtered())

	e.SetDataset(sampleList())
	assert.Equal(t, 1, e.MinClueCount())
	assert.Equal(t, []string{"ant", "bee", "cat", "lion", "zebra"}, e.Filtered().Words())
	assert.Len(t, e.All(), 6)
}

func TestFilter(t *testing.T) {
	e := NewEngine()
	e.SetDataset(sampleList())

	testCases := []struct {
		min      int
		expected []string
	}{
		{1, []string{"ant", "bee", "cat", "lion", "zebra"}},
		{2, []string{"bee", "cat", "lion"}},
		{3, []string{"bee"}},
		{4, []string{}},
		{100, []string{}},
	}

	for _, tc := range testCases {
		got := e.Filter(tc.min)
		assert.Equal(t, tc.expected, got.Words(), "min=%d", tc.min)
		assert.Equal(t, tc.min, e.MinClueCount())
	}
	assert.Len(t, e.All(), 6, "filter must not touch the dataset")
}

func TestFilterIsMonotonic(t *testing.T) {
	e := NewEngine()
	e.SetDataset(sampleList())
	for k1 := 1; k1 <= 4; k1++ {
		wide := map[string]bool{}
		for _, w := range e.Filter(k1).Words() {
			wide[w] = true
		}
		for k2 := k1; k2 <= 4; k2++ {
			for _, w := range e.Filter(k2).Words() {
				assert.True(t, wide[w], "%s passes %d but not %d", w, k2, k1)
			}
		}
	}
}

func TestFilterReusesCachedViews(t *testing.T) {
	e := NewEngine()
	e.SetDataset(sampleList())

	e.Filter(2)
	e.Filter(1)
	e.Filter(2)

	stats := e.Stats()
	assert.Equal(t, 2, stats["cachedViews"])
	assert.Equal(t, 2, stats["cacheHits"])

	e.SetDataset(wordlist.WordList{{Word: "owl", Clues: []string{"Hooter", "Night bird"}}})
	assert.Equal(t, []string{"owl"}, e.Filter(2).Words())
	assert.Equal(t, 2, e.Stats()["cachedViews"])
}

func TestLengthHistogram(t *testing.T) {
	hist := LengthHistogram(sampleList())
	assert.Equal(t, []LengthCount{
		{Length: 3, Count: 4},
		{Length: 4, Count: 1},
		{Length: 5, Count: 1},
	}, hist)
	assert.Empty(t, LengthHistogram(nil))
}

func TestWordsByLengths(t *testing.T) {
	e := NewEngine()
	e.SetDataset(sampleList())

	words, clues := e.WordsByLengths([]int{3, 5, 9, 3})
	require.Len(t, words, 3)
	assert.Equal(t, []string{"ant", "bee", "cat"}, words[3].Words())
	assert.Equal(t, []string{"zebra"}, words[5].Words())
	assert.NotNil(t, words[9])
	assert.Empty(t, words[9])

	assert.Equal(t, map[string]string{
		"ant":   "Picnic pest",
		"bee":   "Spelling contest",
		"cat":   "Feline pet",
		"zebra": "Striped animal",
	}, clues)

	e.Filter(2)
	words, clues = e.WordsByLengths([]int{3})
	assert.Equal(t, []string{"bee", "cat"}, words[3].Words())
	assert.Len(t, clues, 2)

	words, clues = e.WordsByLengths(nil)
	assert.Empty(t, words)
	assert.Empty(t, clues)
}

func TestRepresentativeClue(t *testing.T) {
	testCases := []struct {
		name     string
		clues    []string
		expected string
		ok       bool
	}{
		{"empty", nil, "", false},
		{"single", []string{"only"}, "only", true},
		{"longest", []string{"a short", "a much longer clue"}, "a much longer clue", true},
		{"first tie wins", []string{"a short", "a much longer clue", "tie-length-1", "tie-length-2"}, "a much longer clue", true},
		{"tie between last two", []string{"short", "tie-length-1", "tie-length-2"}, "tie-length-1", true},
		{"runes not bytes", []string{"ééé", "abcd"}, "abcd", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RepresentativeClue(tc.clues)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}
