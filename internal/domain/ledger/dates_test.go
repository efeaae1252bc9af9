package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anchor is a Wednesday
var anchor = time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

func TestResolveDatePhrase(t *testing.T) {
	cases := []struct {
		phrase string
		start  string
		end    string
	}{
		{"today", "2024-03-13", "2024-03-13"},
		{"yesterday", "2024-03-12", "2024-03-12"},
		{"this week", "2024-03-11", "2024-03-13"},
		{"last week", "2024-03-04", "2024-03-10"},
		{"past week", "2024-03-04", "2024-03-10"},
		{"this month", "2024-03-01", "2024-03-13"},
		{"last month", "2024-02-01", "2024-02-29"},
		{"past month", "2024-02-12", "2024-03-13"},
		{"this year", "2024-01-01", "2024-03-13"},
		{"last year", "2023-01-01", "2023-12-31"},
		{"last 30 days", "2024-02-12", "2024-03-13"},
		{"past 7 days", "2024-03-06", "2024-03-13"},
		{"Last Month", "2024-02-01", "2024-02-29"},
	}

	for _, tc := range cases {
		t.Run(tc.phrase, func(t *testing.T) {
			r, ok := ResolveDatePhrase(tc.phrase, anchor)
			require.True(t, ok)
			assert.Equal(t, tc.start, r.Start.Format(DateLayout))
			assert.Equal(t, tc.end, r.End.Format(DateLayout))
		})
	}

	t.Run("unknown phrases are not resolved", func(t *testing.T) {
		for _, phrase := range []string{"a fortnight ago", "recently", "", "last 0 days"} {
			_, ok := ResolveDatePhrase(phrase, anchor)
			assert.False(t, ok, phrase)
		}
	})

	t.Run("same phrase and anchor always resolve identically", func(t *testing.T) {
		a, _ := ResolveDatePhrase("last week", anchor)
		b, _ := ResolveDatePhrase("last week", anchor)
		assert.Equal(t, a, b)
	})
}

func TestExtractDatePhrase(t *testing.T) {
	cases := []struct {
		text   string
		phrase string
		found  bool
	}{
		{"how much did I spend last month", "last month", true},
		{"show groceries for the past 30 days", "past 30 days", true},
		{"what did I buy yesterday", "yesterday", true},
		{"spending this week please", "this week", true},
		{"show me my spending", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			phrase, found := ExtractDatePhrase(tc.text)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.phrase, phrase)
		})
	}
}
