package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords_KeepsTechPunctuation(t *testing.T) {
	got := Words("Skilled in C++, C#, Node.js and CI/CD. Worked at Acme.")
	assert.Equal(t, []string{"Skilled", "in", "C++", "C#", "Node.js", "and", "CI/CD", "Worked", "at", "Acme"}, got)
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one! Third")
	assert.Equal(t, []string{"First one.", "Second one!", "Third"}, got)
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a\n\n b \tc "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "résu", TruncateRunes("résumé", 4))
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}

func TestHasTechMarks(t *testing.T) {
	assert.True(t, HasTechMarks("PostgreSQL"))
	assert.True(t, HasTechMarks("K8s"))
	assert.True(t, HasTechMarks("C++"))
	assert.False(t, HasTechMarks("Engineer"))
}

func TestWordLists(t *testing.T) {
	assert.True(t, IsStopword("The"))
	assert.True(t, IsFiller("Responsible"))
	assert.True(t, IsMonth("Sept."))
	assert.False(t, IsMonth("Kafka"))
	assert.True(t, IsCapitalized("Go"))
	assert.False(t, IsCapitalized("go"))
}
