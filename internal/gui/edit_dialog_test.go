package gui

import (
	"testing"

	"bundledit/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyne.io/fyne/v2/widget"
)

func segmentTexts(segments []widget.RichTextSegment) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		out = append(out, s.(*widget.TextSegment).Text)
	}
	return out
}

func TestHighlightSegmentsNoOccurrences(t *testing.T) {
	segments := highlightSegments("plain text", nil)
	require.Len(t, segments, 1)
	assert.Equal(t, "plain text", segments[0].(*widget.TextSegment).Text)
	assert.Equal(t, plainSegStyle, segments[0].(*widget.TextSegment).Style)
}

func TestHighlightSegments(t *testing.T) {
	text := "The Crest of Flames"
	occs := []types.Occurrence{{Term: "Crest", Start: 4, End: 9}}

	segments := highlightSegments(text, occs)
	assert.Equal(t, []string{"The ", "Crest", " of Flames"}, segmentTexts(segments))
	assert.Equal(t, termSegStyle, segments[1].(*widget.TextSegment).Style)
}

func TestHighlightSegmentsMergesOverlaps(t *testing.T) {
	// "holy tomb" with both "holy tomb" and "tomb" as terms: the inner
	// range folds into the outer one.
	text := "the holy tomb door"
	occs := []types.Occurrence{
		{Term: "holy tomb", Start: 4, End: 13},
		{Term: "tomb", Start: 9, End: 13},
	}

	segments := highlightSegments(text, occs)
	assert.Equal(t, []string{"the ", "holy tomb", " door"}, segmentTexts(segments))
}

func TestHighlightSegmentsAdjacentAndEdges(t *testing.T) {
	text := "CrestCrest"
	occs := []types.Occurrence{
		{Term: "Crest", Start: 0, End: 5},
		{Term: "Crest", Start: 5, End: 10},
	}

	segments := highlightSegments(text, occs)
	// Touching ranges merge into one highlighted run covering everything.
	assert.Equal(t, []string{"CrestCrest"}, segmentTexts(segments))
	assert.Equal(t, termSegStyle, segments[0].(*widget.TextSegment).Style)
}
