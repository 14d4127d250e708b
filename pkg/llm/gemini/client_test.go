package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm"
)

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "")
	assert.Error(t, err)
}

func TestReplyText_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Backend engineer "), genai.Text("with Go.")}},
		}},
	}
	got, err := replyText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer with Go.", got)
}

func TestReplyText_Empty(t *testing.T) {
	_, err := replyText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, llm.ErrEmptyReply)

	_, err = replyText(nil)
	assert.ErrorIs(t, err, llm.ErrEmptyReply)
}
