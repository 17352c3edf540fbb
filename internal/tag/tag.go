package tag

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Alphabet is the set of characters the game uses when generating player and club tags.
const Alphabet = "0289PYLQGRJCUV"

const (
	MinLength = 3
	MaxLength = 14
)

var ErrInvalidTag = errors.New("invalid tag")

var tagPattern = regexp.MustCompile(fmt.Sprintf(`^#[%s]{%d,%d}$`, Alphabet, MinLength, MaxLength))

type Tag string

// Parse normalises user input ("abc", "#abc", " #AbO ") into a canonical tag.
func Parse(raw string) (Tag, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "O", "0")
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !tagPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, raw)
	}
	return Tag(s), nil
}

func MustParse(raw string) Tag {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) String() string {
	return string(t)
}

// URLEscaped is the form the upstream API expects in a path segment.
func (t Tag) URLEscaped() string {
	return url.PathEscape(string(t))
}

// IsBot reports whether a participant tag belongs to a bot. Bots are given
// short numeric tags such as "#2" that never pass real tag validation.
func IsBot(raw string) bool {
	return !tagPattern.MatchString(raw)
}
