package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Basic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Gaming Laptop", "gaming-laptop"},
		{"Simple", "simple"},
		{"ALL UPPER CASE", "all-upper-case"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_SpecialCharacters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Gaming Laptop 15\"", "gaming-laptop-15"},
		{"Hello!!! World???", "hello-world"},
		{"foo@bar#baz", "foo-bar-baz"},
		{"price: $100", "price-100"},
		{"one & two", "one-two"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_Whitespace(t *testing.T) {
	assert.Equal(t, "hello-world", Generate("  Hello   World  "))
	assert.Equal(t, "a-b", Generate("a    b"))
}

func TestGenerate_Edges(t *testing.T) {
	assert.Equal(t, "", Generate(""))
	assert.Equal(t, "", Generate("!!!"))
	assert.Equal(t, "", Generate("   "))
	assert.Equal(t, "42", Generate("42"))
}
