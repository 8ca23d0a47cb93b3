package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeWord(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"CAT", "cat", true},
		{"New York", "newyork", true},
		{"o'clock", "oclock", true},
		{"R2D2", "rd", true},
		{"café", "caf", true},
		{"", "", false},
		{"1234", "", false},
		{"  -- ", "", false},
		{"ÉÈ", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			word, ok := SanitizeWord(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, word)
		})
	}
}

func TestNormalizeClue(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Feline pet", "feline pet"},
		{"feline, pet!", "feline pet"},
		{"  Feline   PET  ", "feline pet"},
		{"___", ""},
		{"", ""},
		{"Room 101", "room 101"},
		{"Café au lait", "caf au lait"},
		{"\"Quoted\" -- clue...", "quoted clue"},
		{"tab\tand\nnewline", "tab and newline"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeClue(tc.input))
		})
	}
}

func TestNormalizeClueIsIdempotent(t *testing.T) {
	for _, s := range []string{"Feline, pet!", "  a--b  c ", "Über 9000"} {
		once := NormalizeClue(s)
		assert.Equal(t, once, NormalizeClue(once))
	}
}

func TestEnsureMinClue(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected int
	}{
		{"nil", nil, 1},
		{"int", 3, 3},
		{"int64", int64(7), 7},
		{"uint8", uint8(2), 2},
		{"zero", 0, 1},
		{"negative", -4, 1},
		{"float floors", 2.9, 2},
		{"below one", 0.5, 1},
		{"nan", math.NaN(), 1},
		{"inf", math.Inf(1), 1},
		{"numeric string", "4", 4},
		{"padded string", " 5 ", 5},
		{"garbage string", "lots", 1},
		{"empty string", "", 1},
		{"bool", true, 1},
		{"huge", 1e300, math.MaxInt32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EnsureMinClue(tc.input))
		})
	}
}

func TestClueSet(t *testing.T) {
	set := NewClueSet()
	assert.True(t, set.ShouldInclude("feline pet"))
	assert.False(t, set.ShouldInclude("feline pet"))
	assert.True(t, set.ShouldInclude("big cat"))
	assert.Equal(t, 2, set.Len())
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}
