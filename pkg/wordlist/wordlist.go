/*
Package wordlist turns crossword dataset rows into a deduplicated word list.

Each raw row carries an answer and a clue. Answers are reduced to canonical
lowercase words, clues are compared through a normalized key so that
"Feline pet" and "feline, pet!" count as the same clue. The first display text
seen for a key is the one kept.

	agg := wordlist.NewAggregator()
	for _, row := range rows {
		agg.Add(row)
	}
	list := agg.List().MinClues(2)

The resulting list is written as a JSON array of [word, [clues...]] pairs,
see Encode and Decode.
*/
package wordlist

// RawEntry is a single parsed dataset row. ID is carried along but never used.
type RawEntry struct {
	ID     string
	Clue   string
	Answer string
}

// Entry is a canonical word with its distinct clues in first-seen order.
type Entry struct {
	Word  string
	Clues []string
}

// WordList is an ordered list of entries sorted by word.
type WordList []Entry

// MinClues returns the entries that have at least k clues, order preserved.
// The receiver is never modified.
func (l WordList) MinClues(k int) WordList {
	out := make(WordList, 0, len(l))
	for _, e := range l {
		if len(e.Clues) >= k {
			out = append(out, e)
		}
	}
	return out
}

// MaxClues returns the largest clue count in the list.
func (l WordList) MaxClues() int {
	max := 0
	for _, e := range l {
		if len(e.Clues) > max {
			max = len(e.Clues)
		}
	}
	return max
}

// Words returns just the words, in list order.
func (l WordList) Words() []string {
	words := make([]string, len(l))
	for i, e := range l {
		words[i] = e.Word
	}
	return words
}
