package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello, world.", want: "Hello ,  world . "},
		{in: "no punctuation", want: "no punctuation"},
		{in: "(a+b)=c", want: " ( a + b )  = c"},
		{in: "don't", want: "don ' t"},
		{in: "50% off #1 @home", want: "50 %  off  # 1  @ home"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.in))
		})
	}
}

func TestPadSeparatesWordsFromPunctuation(t *testing.T) {
	tokens := strings.Fields(Pad(`He said: "stop!" (twice).`))
	assert.Equal(t, []string{"He", "said", ":", `"`, "stop", "!", `"`, "(", "twice", ")", "."}, tokens)
}

// Unpad only strips the padding on the side where the symbol attaches, so
// the original space next to it is kept alongside the padding.
func TestUnpad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello, world.", want: "Hello,  world. "},
		{in: "a (b) c", want: "a  (b)  c"},
		{in: "why? because!", want: "why?  because! "},
		{in: "don't", want: "don't"},
		{in: "mail me@home", want: "mail me@home"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Unpad(Pad(tt.in)))
		})
	}
}
