package wordlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/charmbracelet/log"
)

// MarshalJSON writes the entry as a compact [word, [clues...]] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	clues := e.Clues
	if clues == nil {
		clues = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{e.Word, clues}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads a [word, [clues...]] pair. A missing or null clue list
// decodes as no clues.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("entry is not an array: %w", err)
	}
	if len(pair) == 0 {
		return fmt.Errorf("entry has no word")
	}
	var word string
	if err := json.Unmarshal(pair[0], &word); err != nil {
		return fmt.Errorf("entry word: %w", err)
	}
	var clues []string
	if len(pair) > 1 {
		if err := json.Unmarshal(pair[1], &clues); err != nil {
			return fmt.Errorf("clues of %q: %w", word, err)
		}
	}
	if clues == nil {
		clues = []string{}
	}
	*e = Entry{Word: word, Clues: clues}
	return nil
}

// Encode writes list as a 2-space indented JSON array followed by a newline.
func Encode(w io.Writer, list WordList) error {
	if list == nil {
		list = WordList{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// Decode reads a word list in the Encode format. Entries are returned as
// written, see Dedupe for the loader side cleanup.
func Decode(r io.Reader) (WordList, error) {
	var list WordList
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	if list == nil {
		list = WordList{}
	}
	return list, nil
}

// Dedupe re-derives clue lists by normalized key: blank clues and clues whose
// key is empty are dropped, the first clue per key wins and is kept trimmed.
// Entries without a word are dropped. Order of entries is kept.
func Dedupe(list WordList) WordList {
	out := make(WordList, 0, len(list))
	for _, e := range list {
		if e.Word == "" {
			continue
		}
		seen := utils.NewClueSet()
		clues := make([]string, 0, len(e.Clues))
		for _, clue := range e.Clues {
			trimmed := strings.TrimSpace(clue)
			if trimmed == "" {
				continue
			}
			key := utils.NormalizeClue(trimmed)
			if key == "" || !seen.ShouldInclude(key) {
				continue
			}
			clues = append(clues, trimmed)
		}
		out = append(out, Entry{Word: e.Word, Clues: clues})
	}
	return out
}

// ReadFile decodes and dedupes the word list stored at path.
func ReadFile(path string) (WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	list, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Read %d entries from %s", len(list), path)
	return Dedupe(list), nil
}

// WriteFile encodes list into path, replacing any previous file atomically.
func WriteFile(path string, list WordList) error {
	return utils.WriteFileAtomic(path, func(f *os.File) error {
		w := bufio.NewWriter(f)
		if err := Encode(w, list); err != nil {
			return fmt.Errorf("encode word list: %w", err)
		}
		return w.Flush()
	})
}
