package dispatch

// Fixed result texts.
const (
	MsgGoodbye         = "Goodbye!"
	MsgNoFilesFound    = "No files found matching your search."
	MsgNoSummaryMarker = "[ERROR] No summary generated or file is empty."
)
