package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wiki-chat/internal/chat"
	"wiki-chat/internal/config"
	"wiki-chat/internal/llmservice"
	"wiki-chat/internal/parser"
	"wiki-chat/internal/prompt"
	"wiki-chat/internal/rag"
	"wiki-chat/internal/store"
	"wiki-chat/internal/wiki"
)

const (
	configFilePath = "./configs/config.yaml"
	configPathEnv  = "WIKICHAT_CONFIG"
	divider        = "================================================================================"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	path := configFilePath
	if p := os.Getenv(configPathEnv); p != "" {
		path = p
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Interface("config", cfg.Redacted()).Msg("Loaded config")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	article, err := loadArticle(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading article")
	}

	builder, err := prompt.NewBuilder(cfg.Prompt.Template)
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing prompt template")
	}

	client := llmservice.NewClient(&cfg.LLM)
	pipeline := rag.NewRAG(article, builder, client)

	if cfg.Prompt.DemoQuestion != "" {
		runDemo(ctx, cfg, article, client)
	}

	session := chat.NewSession(pipeline, os.Stdin, os.Stdout)
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("Chat session failed")
	}
}

// fetch, normalize and store the article; any failure here is fatal
func loadArticle(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	raw, err := wiki.NewClient(&cfg.Wiki).FetchSummary(ctx, cfg.Wiki.Title)
	if err != nil {
		return nil, err
	}

	seg, err := parser.NewPunktSegmenter()
	if err != nil {
		return nil, err
	}

	sentences, err := parser.Normalize(raw, cfg.Wiki.MinSentences, seg)
	if err != nil {
		return nil, err
	}

	article, err := store.New(sentences)
	if err != nil {
		return nil, err
	}

	fmt.Println("Dataset Loaded:")
	for i, unit := range article.Units() {
		fmt.Printf("%d: %s\n", i, unit)
	}
	log.Debug().Str("compact", article.Compact()).Msg("Context store built")

	return article, nil
}

// ask the demo question once without and once with the article
func runDemo(ctx context.Context, cfg *config.Config, article *store.Store, client *llmservice.Client) {
	builder, err := prompt.NewBuilder(cfg.Prompt.DemoTemplate)
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing demo prompt template")
	}
	demo := rag.NewRAG(article, builder, client)

	for _, augmented := range []bool{false, true} {
		label := "Basic"
		if augmented {
			label = "Custom"
		}

		fmt.Printf("%s\n%s\n%s Question: %s\n", strings.Repeat("\n", 2), divider, label, cfg.Prompt.DemoQuestion)
		response, err := demo.Ask(ctx, cfg.Prompt.DemoQuestion, augmented)
		if err != nil {
			log.Error().Err(err).Str("mode", label).Msg("Demo question failed")
			fmt.Printf("%s Answer: Error: %v\n", label, err)
			continue
		}
		log.Debug().Str("source", response.Source).Msg("Demo answered")
		fmt.Printf("%s Answer: %s\n", label, response.Content)
	}
}
