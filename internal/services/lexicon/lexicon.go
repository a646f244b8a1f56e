// Package lexicon is a lexical toxicity pre-filter for comments that arrive
// without a model score.
package lexicon

import (
	"regexp"
	"sort"
)

type category struct {
	name     string
	weight   float64
	patterns []*regexp.Regexp
}

var categories = []category{
	{"threats", 10, compile(
		`\b(kill|murder|die|death|hurt|harm|attack|destroy)\b`,
		`\b(tu vas mourir|je vais te|on va te)\b`,
		`\b(i will|gonna|going to)\b.*\b(kill|hurt|destroy)\b`,
	)},
	{"doxxing", 9, compile(
		`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`,
		`\b\d{1,5}\s\w+\s(street|st|avenue|ave|road|rd)\b`,
	)},
	{"sexual", 8, compile(
		`\b(nude|naked|porn)\b`,
		`\b(send nudes|show me)\b`,
	)},
	{"bullying", 7, compile(
		`\b(nobody likes you|everyone hates|kill yourself|kys)\b`,
		`(personne t'aime|tout le monde te déteste)`,
	)},
	{"insults", 5, compile(
		`\b(stupid|idiot|moron|loser|ugly|worthless)\b`,
		`\b(connard|salope|pute|merde)\b`,
	)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Result is the outcome of scoring one text.
type Result struct {
	Score      float64
	Categories []string
	Matches    int
}

// Analyze scores text in [0,1]: the heaviest matched category sets the base,
// each further match adds 0.05.
func Analyze(text string) Result {
	var (
		res    Result
		weight float64
	)
	for _, c := range categories {
		hit := 0
		for _, p := range c.patterns {
			hit += len(p.FindAllStringIndex(text, -1))
		}
		if hit == 0 {
			continue
		}
		res.Matches += hit
		res.Categories = append(res.Categories, c.name)
		if c.weight > weight {
			weight = c.weight
		}
	}
	if res.Matches == 0 {
		return res
	}
	sort.Strings(res.Categories)
	res.Score = weight/10 + 0.05*float64(res.Matches-1)
	if res.Score > 1 {
		res.Score = 1
	}
	return res
}

func Score(text string) float64 { return Analyze(text).Score }
