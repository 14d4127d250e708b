// Package annotator turns résumé text into a short biography and a list of
// skill keywords by combining a part-of-speech/entity tagger with a summarizer.
package annotator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/nlp"
)

const (
	// MaxSkills caps the skill list shown on a portfolio.
	MaxSkills = 12
	// MaxSummaryInput is how many characters of cleaned text reach the summarizer.
	MaxSummaryInput = 1200
	// minSkillLen is exclusive: a skill needs at least three characters.
	minSkillLen = 2
)

// DefaultSummaryLength matches the bio length shown on the templates.
var DefaultSummaryLength = SummaryLength{Min: 30, Max: 60}

// Part-of-speech tags (Universal Dependencies) and entity labels the annotator reads.
const (
	POSNoun       = "NOUN"
	POSProperNoun = "PROPN"

	LabelPerson = "PERSON"
	LabelOrg    = "ORG"
	LabelDate   = "DATE"
	LabelGPE    = "GPE"
	LabelTime   = "TIME"
)

// ExcludedLabels are entity kinds whose text never counts as a skill.
var ExcludedLabels = []string{LabelPerson, LabelOrg, LabelDate, LabelGPE, LabelTime}

var ErrNoText = errors.New("annotator: no text to annotate")

type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"`
}

type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Tagged is a tagger's view of a document: tokens in order plus recognised entities.
type Tagged struct {
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// SummaryLength bounds a summary in words.
type SummaryLength struct {
	Min int
	Max int
}

// Tagger assigns part-of-speech tags and named entities.
type Tagger interface {
	Tag(ctx context.Context, text string) (Tagged, error)
}

// Summarizer condenses text to a short abstract.
type Summarizer interface {
	Summarize(ctx context.Context, text string, length SummaryLength) (string, error)
}

// Result is what the renderer needs from a résumé.
type Result struct {
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

// UseCase annotates résumé text.
type UseCase interface {
	Annotate(ctx context.Context, text string) (Result, error)
}

type service struct {
	tagger     Tagger
	summarizer Summarizer
	length     SummaryLength
}

// NewService wires a tagger and a summarizer.
func NewService(tagger Tagger, summarizer Summarizer) UseCase {
	return &service{tagger: tagger, summarizer: summarizer, length: DefaultSummaryLength}
}

// Annotate tags and summarizes concurrently; the first failure cancels the other call.
func (s *service) Annotate(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrNoText
	}

	var (
		tagged Tagged
		bio    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if tagged, err = s.tagger.Tag(gctx, text); err != nil {
			return fmt.Errorf("tag text: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if bio, err = s.summarizer.Summarize(gctx, SummaryInput(text), s.length); err != nil {
			return fmt.Errorf("summarize text: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{Bio: strings.TrimSpace(bio), Skills: SelectSkills(tagged)}, nil
}

// SummaryInput collapses whitespace and keeps the first MaxSummaryInput characters.
func SummaryInput(text string) string {
	return nlp.TruncateRunes(nlp.CollapseSpaces(text), MaxSummaryInput)
}

// SelectSkills keeps nouns and proper nouns longer than two characters that are
// not part of a person, organisation, date, place or time entity. Duplicates are
// dropped keeping the first occurrence, and at most MaxSkills are returned.
func SelectSkills(tagged Tagged) []string {
	excluded := exclusionSet(tagged.Entities)

	skills := make([]string, 0, MaxSkills)
	seen := make(map[string]struct{})
	for _, tok := range tagged.Tokens {
		if len(skills) == MaxSkills {
			break
		}
		pos := strings.ToUpper(tok.POS)
		if pos != POSNoun && pos != POSProperNoun {
			continue
		}
		clean := strings.TrimSpace(tok.Text)
		if utf8.RuneCountInString(clean) <= minSkillLen {
			continue
		}
		if _, ok := excluded[strings.ToLower(clean)]; ok {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		skills = append(skills, clean)
	}
	return skills
}

// exclusionSet holds each excluded entity's lower-cased text and each of its words,
// so "Jane" is dropped when "Jane Doe" is a PERSON. Matching per word is stricter
// than comparing a token against whole entity texts: a single-word skill that also
// appears inside an organisation or place name ("Docker" in "Docker Inc") is dropped too.
func exclusionSet(entities []Entity) map[string]struct{} {
	out := make(map[string]struct{})
	for _, ent := range entities {
		if !isExcludedLabel(ent.Label) {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(ent.Text))
		if text == "" {
			continue
		}
		out[text] = struct{}{}
		for _, w := range strings.Fields(text) {
			out[w] = struct{}{}
		}
	}
	return out
}

func isExcludedLabel(label string) bool {
	return slices.Contains(ExcludedLabels, strings.ToUpper(strings.TrimSpace(label)))
}
