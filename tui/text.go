package tui

// UI Text Constants
const (
	TextTitle        = "🎬 Video Q&A"
	TextConnected    = "● connected"
	TextDisconnected = "● service unreachable"

	TextProcessLabel  = "Process a video"
	TextLibraryLabel  = "Library"
	TextQuestionLabel = "Ask a question"
	TextAnswerLabel   = "Answer"
	TextSourcesLabel  = "Sources"
	TextSummaryLabel  = "Summary"
	TextActivityLabel = "Recent activity"

	TextURLPlaceholder      = "https://www.youtube.com/watch?v=..."
	TextQuestionPlaceholder = "What is this video about?"
	TextEmptyLibrary        = "No videos yet. Paste a YouTube URL above."
	TextNoSelection         = "Select a video in the library to ask questions."

	TextFooterInput   = "tab: next panel • enter: submit • ctrl+c: quit"
	TextFooterLibrary = "↑/↓: move • enter/space: select • x: delete • s: summarize • h: history • c: clear history • e: export • r: reload • tab: next panel • ctrl+c: quit"
)
