package tag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Normalises(t *testing.T) {
	cases := map[string]Tag{
		"#2PP":       "#2PP",
		"2pp":        "#2PP",
		"  #8qgv  ":  "#8QGV",
		"#9oyl":      "#90YL",
		"ypvjr0Q8UC": "#YPVJR0Q8UC",
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "#", "#2", "#AB", "#2PP!", "#ZZZZ"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidTag), in)
	}
}

func TestURLEscaped(t *testing.T) {
	assert.Equal(t, "%232PP", MustParse("2PP").URLEscaped())
}

func TestIsBot(t *testing.T) {
	assert.True(t, IsBot("#2"))
	assert.True(t, IsBot("#13"))
	assert.True(t, IsBot(""))
	assert.False(t, IsBot("#2PP"))
	assert.False(t, IsBot("#YPVJR0Q8UC"))
}
