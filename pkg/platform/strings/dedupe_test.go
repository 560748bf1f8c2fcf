package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"trims and dedupes", " k1:9092, k2:9092,,k1:9092", []string{"k1:9092", "k2:9092"}},
		{"single", "localhost:9092", []string{"localhost:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.raw, ","))
		})
	}
}

func TestDedupeAndTrim_KeepsFirstOccurrenceOrder(t *testing.T) {
	got := DedupeAndTrim([]string{" b", "a ", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}
