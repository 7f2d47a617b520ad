package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dune%", ContainsPattern("DUNE"))
	assert.Equal(t, `%100\%\_a\\%`, ContainsPattern(`100%_A\`))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw string
		id  int64
		ok  bool
	}{
		{"42", 42, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"khkhkhk", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
		{"+1", 0, false},
		{" 1", 0, false},
		{"007", 7, true},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		id, ok := ParseID(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.id, id, tt.raw)
	}
}
