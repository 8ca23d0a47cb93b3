package query

import (
	"sort"
	"unicode/utf8"

	"github.com/bastiangx/cluelist/pkg/wordlist"
	"github.com/charmbracelet/log"
)

// LengthCount is one bucket of a word length histogram.
type LengthCount struct {
	Length int `msgpack:"len" json:"length"`
	Count  int `msgpack:"n" json:"count"`
}

// Engine holds one loaded dataset and the view for the last applied threshold.
// It is owned by a single goroutine and is not safe for concurrent use.
type Engine struct {
	all          wordlist.WordList
	filtered     wordlist.WordList
	minClueCount int
	cache        *viewCache
}

var _ IEngine = (*Engine)(nil)

// NewEngine creates an engine with an empty dataset
func NewEngine() *Engine {
	e := &Engine{cache: newViewCache()}
	e.SetDataset(nil)
	return e
}

// SetDataset replaces the dataset wholesale. The filtered view starts at a
// threshold of 1, so words without clues are never served by default.
func (e *Engine) SetDataset(all wordlist.WordList) {
	if all == nil {
		all = wordlist.WordList{}
	}
	e.all = all
	e.cache.flush()
	e.minClueCount = 0
	e.Filter(1)
	log.Debugf("Dataset set: %d words, %d with clues", len(e.all), len(e.filtered))
}

// Filter recomputes the view for minClueCount, keeping the dataset order.
// The caller guarantees minClueCount >= 1.
func (e *Engine) Filter(minClueCount int) wordlist.WordList {
	if minClueCount == e.minClueCount {
		return e.filtered
	}
	view, ok := e.cache.get(minClueCount)
	if !ok {
		view = e.all.MinClues(minClueCount)
		e.cache.set(minClueCount, view)
	}
	e.filtered = view
	e.minClueCount = minClueCount
	return view
}

// Filtered returns the current view.
func (e *Engine) Filtered() wordlist.WordList {
	return e.filtered
}

// MinClueCount returns the threshold of the current view.
func (e *Engine) MinClueCount() int {
	return e.minClueCount
}

// All returns the full dataset, including words without clues.
func (e *Engine) All() wordlist.WordList {
	return e.all
}

// WordsByLengths returns, for every requested length, the filtered entries of
// that length in view order, plus one representative clue per returned word.
// Requested lengths without words map to an empty list.
func (e *Engine) WordsByLengths(lengths []int) (map[int]wordlist.WordList, map[string]string) {
	words := make(map[int]wordlist.WordList, len(lengths))
	for _, n := range lengths {
		if _, ok := words[n]; !ok {
			words[n] = wordlist.WordList{}
		}
	}
	clueMap := make(map[string]string)
	if len(words) == 0 {
		return words, clueMap
	}

	for _, entry := range e.filtered {
		n := utf8.RuneCountInString(entry.Word)
		group, ok := words[n]
		if !ok {
			continue
		}
		words[n] = append(group, entry)
		if clue, ok := RepresentativeClue(entry.Clues); ok {
			clueMap[entry.Word] = clue
		}
	}
	return words, clueMap
}

// Stats returns counters about the loaded dataset and the filter cache.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"totalWords":    len(e.all),
		"filteredWords": len(e.filtered),
		"minClueCount":  e.minClueCount,
		"maxClueCount":  e.all.MaxClues(),
	}
	for k, v := range e.cache.stats() {
		stats[k] = v
	}
	return stats
}

// LengthHistogram counts entries per word length, ascending by length.
// Length is measured in runes.
func LengthHistogram(entries wordlist.WordList) []LengthCount {
	counts := make(map[int]int)
	for _, e := range entries {
		counts[utf8.RuneCountInString(e.Word)]++
	}
	hist := make([]LengthCount, 0, len(counts))
	for n, c := range counts {
		hist = append(hist, LengthCount{Length: n, Count: c})
	}
	sort.Slice(hist, func(i, j int) bool {
		return hist[i].Length < hist[j].Length
	})
	return hist
}

// RepresentativeClue picks the longest clue by rune count. The first clue
// reaching the maximum wins. Returns false when there are no clues.
func RepresentativeClue(clues []string) (string, bool) {
	if len(clues) == 0 {
		return "", false
	}
	best, bestLen := clues[0], utf8.RuneCountInString(clues[0])
	for _, c := range clues[1:] {
		if n := utf8.RuneCountInString(c); n > bestLen {
			best, bestLen = c, n
		}
	}
	return best, true
}
