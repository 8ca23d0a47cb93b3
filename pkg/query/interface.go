// Package query answers filter and lookup requests over a loaded word list.
package query

import "github.com/bastiangx/cluelist/pkg/wordlist"

// IEngine defines the operations a host needs from a query engine
type IEngine interface {
	// SetDataset replaces the loaded list and resets the filtered view to 1 clue
	SetDataset(all wordlist.WordList)

	// Filter applies a clue threshold (>= 1) and returns the filtered view
	Filter(minClueCount int) wordlist.WordList

	// Filtered returns the view produced by the last Filter call
	Filtered() wordlist.WordList

	// WordsByLengths groups the filtered view by word length and picks a clue per word
	WordsByLengths(lengths []int) (map[int]wordlist.WordList, map[string]string)

	// Stats returns counters about the loaded dataset
	Stats() map[string]int
}
