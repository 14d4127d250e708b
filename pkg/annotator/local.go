package annotator

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/nlp"
)

// The local tagger and summarizer run without a model server. They are
// heuristic stand-ins that keep the service usable offline and in tests.

var (
	reClock    = regexp.MustCompile(`\b\d{1,2}:\d{2}(?:\s?[AaPp][Mm])?\b`)
	rePlace    = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*), ([A-Z]{2})\b`)
	reOrgAfter = regexp.MustCompile(`(?:\bat|@)\s+([A-Z][\w&\-]*(?:\s+[A-Z][\w&\-]*){0,2})`)
	reNumber   = regexp.MustCompile(`^\d+(?:[.,]\d+)*%?$`)
)

var orgSuffixes = []string{"inc", "llc", "ltd", "corp", "corporation", "university", "college",
	"institute", "company", "technologies", "labs", "group", "bank"}

var adjSuffixes = []string{"ive", "ous", "ful", "able", "ible", "ical", "less"}

// LocalTagger tags with capitalisation, word lists and suffix rules.
type LocalTagger struct{}

func NewLocalTagger() *LocalTagger { return &LocalTagger{} }

func (LocalTagger) Tag(ctx context.Context, text string) (Tagged, error) {
	if err := ctx.Err(); err != nil {
		return Tagged{}, err
	}
	var out Tagged
	for _, sentence := range nlp.Sentences(text) {
		for i, w := range nlp.Words(sentence) {
			out.Tokens = append(out.Tokens, Token{Text: w, POS: localPOS(w, i == 0)})
		}
	}
	out.Entities = localEntities(text, out.Tokens)
	return out, nil
}

func localPOS(w string, sentenceStart bool) string {
	lower := strings.ToLower(w)
	switch {
	case isNumber(w):
		return "NUM"
	case nlp.IsStopword(w):
		return "ADP"
	case nlp.IsFiller(w):
		return "X"
	case nlp.IsMonth(w):
		return POSProperNoun
	case nlp.HasTechMarks(w):
		return POSProperNoun
	case nlp.IsCapitalized(w) && !sentenceStart:
		return POSProperNoun
	case strings.HasSuffix(lower, "ly"):
		return "ADV"
	case strings.HasSuffix(lower, "ing") || strings.HasSuffix(lower, "ed"):
		return "VERB"
	case hasAnySuffix(lower, adjSuffixes):
		return "ADJ"
	case nlp.IsCapitalized(w):
		// sentence-initial and otherwise unremarkable: section headings, names
		return POSProperNoun
	default:
		return POSNoun
	}
}

func localEntities(text string, tokens []Token) []Entity {
	var ents []Entity

	// A résumé opens with its owner's name.
	var name []string
	for _, tok := range tokens {
		if tok.POS != POSProperNoun || nlp.HasTechMarks(tok.Text) || nlp.IsMonth(tok.Text) || len(name) == 2 {
			break
		}
		name = append(name, tok.Text)
	}
	if len(name) >= 2 {
		ents = append(ents, Entity{Text: strings.Join(name, " "), Label: LabelPerson})
	}

	for _, m := range reOrgAfter.FindAllStringSubmatch(text, -1) {
		ents = append(ents, Entity{Text: m[1], Label: LabelOrg})
	}
	for i, tok := range tokens {
		if !nlp.IsCapitalized(tok.Text) || !slices.Contains(orgSuffixes, strings.ToLower(tok.Text)) {
			continue
		}
		start := i
		for start > 0 && tokens[start-1].POS == POSProperNoun && !nlp.HasTechMarks(tokens[start-1].Text) {
			start--
		}
		parts := make([]string, 0, i-start+1)
		for _, t := range tokens[start : i+1] {
			parts = append(parts, t.Text)
		}
		ents = append(ents, Entity{Text: strings.Join(parts, " "), Label: LabelOrg})
	}

	for _, m := range rePlace.FindAllStringSubmatch(text, -1) {
		ents = append(ents, Entity{Text: m[1], Label: LabelGPE}, Entity{Text: m[2], Label: LabelGPE})
	}
	for _, m := range reClock.FindAllString(text, -1) {
		ents = append(ents, Entity{Text: m, Label: LabelTime})
	}
	for _, tok := range tokens {
		if nlp.IsMonth(tok.Text) || isYear(tok.Text) || strings.EqualFold(tok.Text, "present") {
			ents = append(ents, Entity{Text: tok.Text, Label: LabelDate})
		}
	}
	return ents
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isNumber(w string) bool {
	return reNumber.MatchString(w)
}

func isYear(w string) bool {
	n, err := strconv.Atoi(w)
	return err == nil && n >= 1950 && n <= 2099
}

// LocalSummarizer builds an extractive summary from the leading sentences.
type LocalSummarizer struct{}

func NewLocalSummarizer() *LocalSummarizer { return &LocalSummarizer{} }

func (LocalSummarizer) Summarize(ctx context.Context, text string, length SummaryLength) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text = nlp.CollapseSpaces(text)
	if text == "" {
		return "", ErrNoText
	}

	var words []string
	for _, sentence := range nlp.Sentences(text) {
		sw := strings.Fields(sentence)
		if len(words) >= length.Min && len(words)+len(sw) > length.Max {
			break
		}
		words = append(words, sw...)
		if len(words) >= length.Max {
			break
		}
	}
	if length.Max > 0 && len(words) > length.Max {
		words = words[:length.Max]
	}
	return strings.Join(words, " "), nil
}
