package rag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wiki-chat/internal/config"
	"wiki-chat/internal/llmservice"
	"wiki-chat/internal/models"
	"wiki-chat/internal/parser"
	"wiki-chat/internal/prompt"
	"wiki-chat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (c *recordingCompleter) Complete(_ context.Context, p string) (string, error) {
	c.prompts = append(c.prompts, p)
	return c.reply, c.err
}

func newBuilder(t *testing.T) *prompt.Builder {
	t.Helper()
	b, err := prompt.NewBuilder(config.Default().Prompt.Template)
	require.NoError(t, err)
	return b
}

func newStore(t *testing.T, sentences ...string) *store.Store {
	t.Helper()
	s, err := store.New(sentences)
	require.NoError(t, err)
	return s
}

func TestAnswer_EndToEnd(t *testing.T) {
	seg, err := parser.NewPunktSegmenter()
	require.NoError(t, err)
	sentences, err := parser.Normalize("Autocracy is a system of government.", 3, seg)
	require.NoError(t, err)
	require.Len(t, sentences, 3)

	article := newStore(t, sentences...)
	want := strings.Repeat("autocracy is a system of government. ", 3)
	assert.Equal(t, strings.TrimSuffix(want, " "), article.Render())

	var sent models.ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Write([]byte(`{"choices":[{"message":{"content":"An autocracy is..."}}]}`))
	}))
	defer server.Close()

	llmCfg := config.Default().LLM
	llmCfg.Endpoint = server.URL
	llmCfg.Key = "k"
	llmCfg.Timeout = 5 * time.Second

	r := NewRAG(article, newBuilder(t), llmservice.NewClient(&llmCfg))
	answer, err := r.Answer(context.Background(), "What is autocracy?")
	require.NoError(t, err)
	assert.Equal(t, "An autocracy is...", answer)

	require.Len(t, sent.Messages, 1)
	content := sent.Messages[0].Content
	assert.Equal(t, "user", sent.Messages[0].Role)
	assert.Contains(t, content, article.Render())
	assert.True(t, strings.HasSuffix(content, "What is autocracy?"))
}

func TestAsk_BasicSendsQuestionOnly(t *testing.T) {
	completer := &recordingCompleter{reply: "answer"}
	r := NewRAG(newStore(t, "one.", "two."), newBuilder(t), completer)

	resp, err := r.Ask(context.Background(), "What is autocracy?", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"What is autocracy?"}, completer.prompts)
	assert.Equal(t, &models.PromptResponse{Query: "What is autocracy?", Source: models.SourceBasic, Content: "answer"}, resp)
}

func TestAsk_AugmentedIncludesArticle(t *testing.T) {
	completer := &recordingCompleter{reply: "answer"}
	r := NewRAG(newStore(t, "one.", "two."), newBuilder(t), completer)

	resp, err := r.Ask(context.Background(), "q?", true)
	require.NoError(t, err)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "\none. two.\n")
	assert.Equal(t, models.SourceArticle, resp.Source)
}

func TestAnswer_PropagatesCompletionErrors(t *testing.T) {
	apiErr := &llmservice.APIError{StatusCode: 500, Body: "boom"}
	r := NewRAG(newStore(t, "one."), newBuilder(t), &recordingCompleter{err: apiErr})

	_, err := r.Answer(context.Background(), "q")
	var got *llmservice.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 500, got.StatusCode)
}
