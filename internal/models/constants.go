package models

const (
	// DisallowedCharsRegex matches everything the normalizer strips from article text.
	DisallowedCharsRegex = `[^a-zA-Z0-9\s\.\,]`
	WhitespaceRegex      = `\s+`

	SentenceJoiner   = " "
	UnitSeparator    = ". "
	CompactSeparator = "."

	ContextVar  = "context"
	QuestionVar = "question"

	RoleUser      = "user"
	RequestIDHdr  = "X-Request-Id"
	ExitCommand   = "exit"
	SourceBasic   = "basic"
	SourceArticle = "article"
)
