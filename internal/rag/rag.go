package rag

import (
	"context"

	"wiki-chat/internal/models"
	"wiki-chat/internal/prompt"
)

// Completer sends a prompt to the completion endpoint.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RAG answers questions against one fixed article.
type RAG struct {
	article   prompt.Renderer
	builder   *prompt.Builder
	completer Completer
}

func NewRAG(article prompt.Renderer, builder *prompt.Builder, completer Completer) *RAG {
	return &RAG{article: article, builder: builder, completer: completer}
}

// Answer is the per-turn entry point: augment question with the article and
// complete it. Errors come straight from the completer.
func (r *RAG) Answer(ctx context.Context, question string) (string, error) {
	resp, err := r.Ask(ctx, question, true)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Ask runs question as a basic query, or an augmented one when augmented is true.
func (r *RAG) Ask(ctx context.Context, question string, augmented bool) (*models.PromptResponse, error) {
	var (
		renderer prompt.Renderer
		source   = models.SourceBasic
	)
	if augmented {
		renderer = r.article
		source = models.SourceArticle
	}

	text, err := r.builder.Build(question, renderer)
	if err != nil {
		return nil, err
	}

	content, err := r.completer.Complete(ctx, text)
	if err != nil {
		return nil, err
	}

	return &models.PromptResponse{
		Query:   question,
		Source:  source,
		Content: content,
	}, nil
}
