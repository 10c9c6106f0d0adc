package external

import (
	"context"
	"time"

	"synergyai.app/internal/ports"
)

// TextGeneratorLoggingDecorator decorates an LLM client with structured logging.
// Prompts are not logged, only their size.
type TextGeneratorLoggingDecorator struct {
	generator ports.TextGenerator
	logger    ports.Logger
}

// NewTextGeneratorLoggingDecorator creates a new logging decorator for text generators
func NewTextGeneratorLoggingDecorator(generator ports.TextGenerator, logger ports.Logger) ports.TextGenerator {
	return &TextGeneratorLoggingDecorator{
		generator: generator,
		logger:    logger,
	}
}

// Generate wraps the completion call with structured logging
func (d *TextGeneratorLoggingDecorator) Generate(ctx context.Context, prompt string) (string, error) {
	d.logger.Info("LLM request started",
		ports.F("prompt_chars", len(prompt)),
		ports.F("event", "request"))

	startTime := time.Now()
	answer, err := d.generator.Generate(ctx, prompt)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("LLM request failed",
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return "", err
	}

	d.logger.Info("LLM request completed",
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("answer_chars", len(answer)))

	return answer, nil
}

// SearcherLoggingDecorator decorates a retrieval client with structured logging
type SearcherLoggingDecorator struct {
	searcher ports.Searcher
	logger   ports.Logger
}

// NewSearcherLoggingDecorator creates a new logging decorator for searchers
func NewSearcherLoggingDecorator(searcher ports.Searcher, logger ports.Logger) ports.Searcher {
	return &SearcherLoggingDecorator{
		searcher: searcher,
		logger:   logger,
	}
}

// Search wraps the retrieval call with structured logging
func (d *SearcherLoggingDecorator) Search(ctx context.Context, query string, k int, allowedSources []string) ([]ports.Chunk, error) {
	d.logger.Info("Retrieval request started",
		ports.F("query", query),
		ports.F("k", k),
		ports.F("sources", len(allowedSources)),
		ports.F("event", "request"))

	startTime := time.Now()
	chunks, err := d.searcher.Search(ctx, query, k, allowedSources)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Retrieval request failed",
			ports.F("query", query),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Retrieval request completed",
		ports.F("query", query),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("chunks", len(chunks)))

	return chunks, nil
}
