package models

// PromptResponse is one answered question, ready for display.
type PromptResponse struct {
	Query   string
	Source  string
	Content string
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body POSTed to the chat-completion endpoint.
type ChatRequest struct {
	Model             string        `json:"model"`
	Messages          []ChatMessage `json:"messages"`
	MaxTokens         int           `json:"max_tokens"`
	Temperature       float64       `json:"temperature"`
	TopP              float64       `json:"top_p"`
	TopK              int           `json:"top_k"`
	RepetitionPenalty float64       `json:"repetition_penalty"`
	Stop              []string      `json:"stop"`
	Stream            bool          `json:"stream"`
}

// ChatResponse holds only the part of the envelope we read. Pointers let a
// missing field be told apart from an empty one.
type ChatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ArticleSummary is the subset of the REST summary payload we use.
type ArticleSummary struct {
	Title   string  `json:"title"`
	Extract *string `json:"extract"`
}
