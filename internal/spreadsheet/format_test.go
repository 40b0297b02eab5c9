package spreadsheet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type named string

func (n named) String() string { return "name:" + string(n) }

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string", input: "Hook", expected: "Hook"},
		{name: "float two decimals", input: 13.4, expected: "13.40"},
		{name: "float rounds", input: 1.005001, expected: "1.01"},
		{name: "negative float", input: -0.5, expected: "-0.50"},
		{name: "float32", input: float32(2.5), expected: "2.50"},
		{name: "int", input: 42, expected: "42"},
		{name: "int64", input: int64(-7), expected: "-7"},
		{name: "bool true", input: true, expected: "true"},
		{name: "bool false", input: false, expected: "false"},
		{name: "date", input: time.Date(2025, 1, 5, 13, 0, 0, 0, time.UTC), expected: "2025-01-05"},
		{name: "stringer", input: named("x"), expected: "name:x"},
		{name: "fallback", input: []int{1, 2}, expected: "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}

func TestFitWidth(t *testing.T) {
	assert.Equal(t, MinColumnWidth, fitWidth(""))
	assert.Equal(t, MinColumnWidth, fitWidth("abc"))
	assert.Equal(t, 22.0, fitWidth("twenty characters!!!"))
	assert.Equal(t, 14.0, fitWidth("日本語の文字"))
	assert.Equal(t, 12.0, fitWidth("short\nten chars!"))
	assert.Equal(t, MaxColumnWidth, fitWidth(strings.Repeat("x", 400)))
}
