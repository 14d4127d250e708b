package annotator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/nlp"
)

// maxTagChars bounds the text sent to the tagging model.
const maxTagChars = 12000

const taggerSystemPrompt = "You are a part-of-speech and named-entity tagger for English résumés. " +
	"Reply with one JSON object only: no markdown, no commentary. Never invent words that are not in the text."

const taggerUserPrompt = `Tag the résumé text between the markers.
<<<
%s
>>>

Return STRICTLY one JSON object:
{
  "tokens": [{"text": string, "pos": string}],
  "entities": [{"text": string, "label": string}]
}

Rules:
- "tokens": every NOUN and PROPN token in order of appearance, using Universal Dependencies tags.
- "entities": named entities with labels PERSON, ORG, GPE, DATE, TIME, PRODUCT, LANGUAGE or NORP.
- Empty lists are [] never null.
`

const summarizerSystemPrompt = "You write short professional biographies from résumé text. " +
	"Reply with the biography only, as plain text, in the third person. Do not invent facts."

const summarizerUserPrompt = `Summarize the résumé text between the markers into a biography of %d to %d words.
<<<
%s
>>>`

// LLMTagger asks a chat model for part-of-speech tags and entities.
type LLMTagger struct {
	model llm.ChatModel
}

func NewLLMTagger(model llm.ChatModel) *LLMTagger {
	return &LLMTagger{model: model}
}

func (t *LLMTagger) Tag(ctx context.Context, text string) (Tagged, error) {
	text = nlp.TruncateRunes(strings.TrimSpace(text), maxTagChars)
	raw, err := t.model.Ask(ctx, taggerSystemPrompt, fmt.Sprintf(taggerUserPrompt, text))
	if err != nil {
		return Tagged{}, err
	}
	var out Tagged
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &out); err != nil {
		return Tagged{}, fmt.Errorf("decode tagger reply: %w", err)
	}
	for i := range out.Tokens {
		out.Tokens[i].POS = strings.ToUpper(strings.TrimSpace(out.Tokens[i].POS))
	}
	for i := range out.Entities {
		out.Entities[i].Label = strings.ToUpper(strings.TrimSpace(out.Entities[i].Label))
	}
	return out, nil
}

// LLMSummarizer asks a chat model for an abstractive summary.
type LLMSummarizer struct {
	model llm.ChatModel
}

func NewLLMSummarizer(model llm.ChatModel) *LLMSummarizer {
	return &LLMSummarizer{model: model}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, text string, length SummaryLength) (string, error) {
	raw, err := s.model.Ask(ctx, summarizerSystemPrompt, fmt.Sprintf(summarizerUserPrompt, length.Min, length.Max, text))
	if err != nil {
		return "", err
	}
	bio := nlp.CollapseSpaces(llm.StripFences(raw))
	bio = strings.Trim(bio, `"`)
	if bio == "" {
		return "", llm.ErrEmptyReply
	}
	return bio, nil
}
