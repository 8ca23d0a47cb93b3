package wordlist

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = Entry{}
	_ msgpack.CustomDecoder = (*Entry)(nil)
)

// EncodeMsgpack writes the entry with the same [word, [clues...]] layout as the JSON form.
func (e Entry) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(e.Word); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(e.Clues)); err != nil {
		return err
	}
	for _, c := range e.Clues {
		if err := enc.EncodeString(c); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads an entry written by EncodeMsgpack. Extra trailing
// elements are skipped.
func (e *Entry) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("entry is not an array: %w", err)
	}
	if n < 1 {
		return fmt.Errorf("entry has no word")
	}
	word, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("entry word: %w", err)
	}
	clues := []string{}
	if n > 1 {
		m, err := dec.DecodeArrayLen()
		if err != nil {
			return fmt.Errorf("clues of %q: %w", word, err)
		}
		for i := 0; i < m; i++ {
			c, err := dec.DecodeString()
			if err != nil {
				return fmt.Errorf("clue %d of %q: %w", i, word, err)
			}
			clues = append(clues, c)
		}
	}
	for i := 2; i < n; i++ {
		if err := dec.Skip(); err != nil {
			return err
		}
	}
	*e = Entry{Word: word, Clues: clues}
	return nil
}
