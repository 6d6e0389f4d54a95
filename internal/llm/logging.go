package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/store"
)

// LoggingProvider stores every call in the event log, which backs the
// `smartprep llm` commands, and writes one line to the application log.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	log    *zap.Logger
}

// WithLogging wraps p. vendor is the provider family recorded next to the
// model. Either sink may be nil.
func WithLogging(p Provider, vendor string, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{
		inner:  p,
		vendor: vendor,
		events: events,
		log:    logger.With(zap.String("provider", vendor)),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	fields := []zap.Field{
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("llm request", fields...)
	}

	if l.events != nil {
		// A cancelled call is still worth recording.
		if serr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
			l.log.Warn("failed to record LLM request event", zap.Error(serr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) event(p Purpose, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     string(p),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// transcript renders a request as labelled sections for `smartprep llm
// view`: system prompt, each message, then the schema if any.
func transcript(req Request) string {
	var sections []string
	if req.System != "" {
		sections = append(sections, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		sections = append(sections, fmt.Sprintf("[%s]\n%s", m.Role, m.Content))
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			sections = append(sections, fmt.Sprintf("[schema: %s]\n%s", req.Schema.Name, def))
		}
	}
	return strings.Join(sections, "\n\n")
}
