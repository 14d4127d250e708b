package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SinglePage(t *testing.T) {
	doc, err := Extract(buildPDF("Jane Doe Backend Engineer Kubernetes"))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.PageCount)
	assert.Contains(t, doc.Text, "Jane Doe Backend Engineer Kubernetes")
	assert.Equal(t, 5, doc.WordCount)
}

func TestExtract_ConcatenatesPagesInOrder(t *testing.T) {
	doc, err := Extract(buildPDF("First page Golang", "Second page Postgres"))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.PageCount)
	first := strings.Index(doc.Text, "First page Golang")
	second := strings.Index(doc.Text, "Second page Postgres")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestExtract_NotAPDF(t *testing.T) {
	_, err := Extract([]byte("this is a plain text file pretending to be a resume, long enough to be read"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestExtract_Empty(t *testing.T) {
	_, err := Extract(nil)
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestExtract_NoTextLayer(t *testing.T) {
	_, err := Extract(buildPDF(""))
	assert.ErrorIs(t, err, ErrEmptyText)
}

