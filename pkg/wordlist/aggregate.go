package wordlist

import (
	"strings"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Stats counts what happened to the rows fed into an Aggregator.
type Stats struct {
	Rows            int // rows seen
	RejectedAnswers int // rows dropped because the answer had no letters
	EmptyClues      int // rows whose clue was blank or normalized to nothing
	DuplicateClues  int // clues dropped because their key was already recorded
	Clues           int // distinct clues kept
	Words           int // distinct words recorded
}

// ProgressFunc observes aggregation progress.
type ProgressFunc func(Stats)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithCollation sets the ordering used by List.
func WithCollation(c Collation) Option {
	return func(a *Aggregator) {
		a.collation = c
	}
}

// WithProgress calls fn every `every` rows and once more from List.
func WithProgress(every int, fn ProgressFunc) Option {
	return func(a *Aggregator) {
		if every < 1 {
			every = 1
		}
		a.progressEvery = every
		a.progress = fn
	}
}

// record is the per word accumulator stored in the trie.
type record struct {
	keys  *utils.ClueSet
	clues []string
}

// Aggregator builds the word -> distinct clues mapping in a single pass.
// It is not safe for concurrent use.
type Aggregator struct {
	trie          *patricia.Trie
	stats         Stats
	collation     Collation
	progress      ProgressFunc
	progressEvery int
}

// NewAggregator creates an empty aggregator
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		trie:      patricia.NewTrie(),
		collation: CollationCodepoint,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add folds one raw row into the mapping and reports whether the row's
// answer produced a word. A word is recorded even when its clue is unusable.
func (a *Aggregator) Add(raw RawEntry) bool {
	a.stats.Rows++
	defer a.reportProgress()

	word, ok := utils.SanitizeWord(raw.Answer)
	if !ok {
		a.stats.RejectedAnswers++
		return false
	}

	rec := a.ensure(word)

	clue := strings.TrimSpace(raw.Clue)
	if clue == "" {
		a.stats.EmptyClues++
		return true
	}
	key := utils.NormalizeClue(clue)
	if key == "" {
		a.stats.EmptyClues++
		return true
	}
	if !rec.keys.ShouldInclude(key) {
		a.stats.DuplicateClues++
		return true
	}
	rec.clues = append(rec.clues, clue)
	a.stats.Clues++
	return true
}

// ensure returns the record for word, creating it on first sight.
func (a *Aggregator) ensure(word string) *record {
	key := patricia.Prefix(word)
	if item := a.trie.Get(key); item != nil {
		return item.(*record)
	}
	rec := &record{keys: utils.NewClueSet()}
	a.trie.Insert(key, rec)
	a.stats.Words++
	return rec
}

func (a *Aggregator) reportProgress() {
	if a.progress != nil && a.stats.Rows%a.progressEvery == 0 {
		a.progress(a.stats)
	}
}

// Stats returns the counters accumulated so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// List snapshots the mapping as a sorted WordList. Later calls to Add do not
// affect a list that was already returned.
func (a *Aggregator) List() WordList {
	list := make(WordList, 0, a.stats.Words)
	err := a.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		rec := item.(*record)
		clues := make([]string, len(rec.clues))
		copy(clues, rec.clues)
		list = append(list, Entry{Word: string(p), Clues: clues})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting word trie: %v", err)
	}
	SortEntries(list, a.collation)
	if a.progress != nil {
		a.progress(a.stats)
	}
	log.Debugf("Aggregated %d rows into %d words (%d clues, %d duplicates dropped)",
		a.stats.Rows, a.stats.Words, a.stats.Clues, a.stats.DuplicateClues)
	return list
}

// Aggregate runs a fresh Aggregator over entries and returns the full list.
// Words with zero usable clues are included; use MinClues to drop them.
func Aggregate(entries []RawEntry, opts ...Option) WordList {
	a := NewAggregator(opts...)
	for _, e := range entries {
		a.Add(e)
	}
	return a.List()
}
