package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs of spaces", "a\t\tb   c", "a b c"},
		{"ruled lines dropped", "header\n------\nvalue", "header\n\nvalue"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing spaces trimmed", "a   \nb", "a\nb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}
