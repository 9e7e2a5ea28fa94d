package prompt

import (
	"errors"
	"fmt"
	"strings"

	"wiki-chat/internal/models"

	"github.com/tmc/langchaingo/prompts"
)

var ErrInvalidTemplate = errors.New("invalid prompt template")

// Renderer supplies the context blob for augmented queries.
type Renderer interface {
	Render() string
}

type Builder struct {
	template prompts.PromptTemplate
}

const (
	probeContext  = "\x00context\x00"
	probeQuestion = "\x00question\x00"
)

// NewBuilder parses tmpl, a Go text template over {{.context}} and
// {{.question}}. The template must place the whole context before the
// question and end with the question.
func NewBuilder(tmpl string) (*Builder, error) {
	pt := prompts.NewPromptTemplate(tmpl, []string{models.ContextVar, models.QuestionVar})

	out, err := pt.Format(map[string]any{
		models.ContextVar:  probeContext,
		models.QuestionVar: probeQuestion,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	ctxAt := strings.Index(out, probeContext)
	if ctxAt < 0 || strings.Count(out, probeQuestion) != 1 || !strings.HasSuffix(out, probeQuestion) {
		return nil, fmt.Errorf("%w: template must contain the context and end with the question", ErrInvalidTemplate)
	}
	if ctxAt > strings.Index(out, probeQuestion) {
		return nil, fmt.Errorf("%w: context must come before the question", ErrInvalidTemplate)
	}

	return &Builder{template: pt}, nil
}

// Build returns question unchanged when ctx is nil (basic query), otherwise
// the template rendered with the context blob (augmented query).
func (b *Builder) Build(question string, ctx Renderer) (string, error) {
	if ctx == nil {
		return question, nil
	}

	out, err := b.template.Format(map[string]any{
		models.ContextVar:  ctx.Render(),
		models.QuestionVar: question,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return out, nil
}
