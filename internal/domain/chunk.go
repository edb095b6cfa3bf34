package domain

// Chunk is a contiguous window of a document. Start and End are character
// (rune) offsets into the document, End exclusive.
type Chunk struct {
	Index int
	Start int
	End   int
	Text  string
}

// Len returns the number of characters the chunk spans.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// SummaryResult describes how a document was reduced.
type SummaryResult struct {
	Text           string
	Chunks         int
	ChunkSummaries int
	// Reduced is false when the final reduction produced nothing and Text is
	// the joined chunk summaries.
	Reduced bool
}

// TruncateRunes returns at most limit characters of text. A non-positive limit
// disables truncation.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
