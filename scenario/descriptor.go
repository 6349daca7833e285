package scenario

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrMalformedDescriptor is returned for defender input that does not parse
// or lacks a required stat.
var ErrMalformedDescriptor = errors.New("scenario: malformed defender descriptor")

// Defender holds the adversary's starting stats.
type Defender struct {
	HP     int `yaml:"hp"`
	Damage int `yaml:"damage"`
}

// descriptorLexer splits "Hit Points: 58" style lines. Newlines are plain
// whitespace; each entry ends at its integer.
var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type descriptor struct {
	Entries []*descriptorEntry `parser:"@@*"`
}

type descriptorEntry struct {
	Pos   lexer.Position
	Key   []string `parser:"@Ident+ \":\""`
	Value int      `parser:"@Int"`
}

var descriptorParser = participle.MustBuild[descriptor](
	participle.Lexer(descriptorLexer),
	participle.Elide("Whitespace"),
)

// ParseDefender reads a defender descriptor. Keys are matched case-insensitively;
// "Hit Points" and "Damage" are required, each exactly once.
func ParseDefender(r io.Reader) (Defender, error) {
	d, err := descriptorParser.Parse("", r)
	if err != nil {
		return Defender{}, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	var (
		out                Defender
		seenHP, seenDamage bool
	)
	for _, e := range d.Entries {
		key := strings.ToLower(strings.Join(e.Key, " "))
		if e.Value < 0 {
			return Defender{}, fmt.Errorf("%w: %s: negative %s", ErrMalformedDescriptor, e.Pos, key)
		}
		switch key {
		case "hit points":
			if seenHP {
				return Defender{}, fmt.Errorf("%w: %s: repeated %s", ErrMalformedDescriptor, e.Pos, key)
			}
			out.HP, seenHP = e.Value, true
		case "damage":
			if seenDamage {
				return Defender{}, fmt.Errorf("%w: %s: repeated %s", ErrMalformedDescriptor, e.Pos, key)
			}
			out.Damage, seenDamage = e.Value, true
		default:
			return Defender{}, fmt.Errorf("%w: %s: unknown stat %q", ErrMalformedDescriptor, e.Pos, key)
		}
	}
	if !seenHP || !seenDamage {
		return Defender{}, fmt.Errorf("%w: need both Hit Points and Damage", ErrMalformedDescriptor)
	}

	return out, nil
}

// ParseDefenderString is ParseDefender over a string.
func ParseDefenderString(s string) (Defender, error) {
	return ParseDefender(strings.NewReader(s))
}
