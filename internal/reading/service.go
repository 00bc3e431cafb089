// Package reading turns a user question into a three-card spread interpreted
// by a chat-completion model, delivered one entry at a time.
package reading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pamnard/TaroBot/core/logger"
	"github.com/pamnard/TaroBot/internal/llm"
	"github.com/pamnard/TaroBot/internal/session"
	"github.com/pamnard/TaroBot/internal/tarot"
)

// ErrNoPrompt is returned by Start when the user has not asked to be read,
// i.e. no await flag is pending for the (chat, user) pair.
var ErrNoPrompt = errors.New("reading: no question was requested")

// Service owns the reading lifecycle: request, start, step-through, abandon.
type Service struct {
	sessions  *session.Sessions
	completer llm.Completer
	rng       tarot.RNG
	log       *slog.Logger
}

// Options configure a Service. RNG and Log default when nil.
type Options struct {
	Sessions  *session.Sessions
	Completer llm.Completer
	RNG       tarot.RNG
	Log       *slog.Logger
}

func NewService(opts Options) *Service {
	rng := opts.RNG
	if rng == nil {
		rng = tarot.DefaultRNG()
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		sessions:  opts.Sessions,
		completer: opts.Completer,
		rng:       rng,
		log:       log,
	}
}

// RequestQuestion marks the pair as waiting for a freeform question. Any
// reading left over from before is dropped so the next question starts clean.
func (s *Service) RequestQuestion(chat, user int64) {
	s.sessions.ClearRemains(chat, user)
	s.sessions.Await(chat, user)
}

// Abandon clears all reading state for the pair.
func (s *Service) Abandon(chat, user int64) {
	s.sessions.ClearAwait(chat, user)
	s.sessions.ClearRemains(chat, user)
}

// Start consumes the await flag and runs a full reading for the question:
// three cards drawn, four chained completion calls over one transcript, four
// entries out. The first entry is returned for immediate delivery and the
// remaining three are queued. On any completion failure nothing is queued and
// the error is returned; the flag stays consumed, the user asks again.
func (s *Service) Start(ctx context.Context, chat, user int64, question string) (Entry, error) {
	if !s.sessions.ConsumeAwait(chat, user) {
		return Entry{}, ErrNoPrompt
	}

	spread, err := tarot.Draw3(s.rng)
	if err != nil {
		return Entry{}, err
	}

	started := time.Now()
	entries, err := s.interpret(ctx, question, spread)
	if err != nil {
		logger.LogEvent(ctx, s.log, slog.LevelError, "reading.failed",
			slog.String("status", logger.Status(err)),
			slog.Duration("took", logger.Took(started)),
			slog.Any("error", err),
		)
		return Entry{}, err
	}
	logger.LogEvent(ctx, s.log, slog.LevelInfo, "reading.started",
		slog.Int("turns", len(entries)),
		slog.Duration("took", logger.Took(started)),
	)

	rest, err := json.Marshal(entries[1:])
	if err != nil {
		return Entry{}, fmt.Errorf("reading: encode queue: %w", err)
	}
	s.sessions.PutRemains(chat, user, rest)
	return entries[0], nil
}

// Next pops the head of the queued remainder. ok is false when nothing is
// pending, which callers treat as a silent no-op. When the popped entry was
// the last one the queue key is deleted; otherwise the remainder is stored
// back with a refreshed deadline.
func (s *Service) Next(chat, user int64) (Entry, bool) {
	raw, found := s.sessions.GetRemains(chat, user)
	if !found {
		return Entry{}, false
	}
	var queue []Entry
	if err := json.Unmarshal(raw, &queue); err != nil || len(queue) == 0 {
		// A corrupt queue cannot be stepped through; drop it.
		s.sessions.ClearRemains(chat, user)
		return Entry{}, false
	}
	head, rest := queue[0], queue[1:]
	if len(rest) == 0 {
		s.sessions.ClearRemains(chat, user)
		return head, true
	}
	encoded, err := json.Marshal(rest)
	if err != nil {
		s.sessions.ClearRemains(chat, user)
		return head, true
	}
	s.sessions.PutRemains(chat, user, encoded)
	return head, true
}

// interpret runs the four completion calls, threading one growing transcript
// so each interpretation sees everything said before it.
func (s *Service) interpret(ctx context.Context, question string, spread [tarot.SpreadSize]tarot.Drawn) ([]Entry, error) {
	transcript := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
	}

	entries := make([]Entry, 0, tarot.SpreadSize+1)
	for i, d := range spread {
		prompt := cardPrompt(d)
		if i == 0 {
			prompt = openingPrompt(question) + "\n\n" + prompt
		}
		transcript = append(transcript, llm.Message{Role: llm.RoleUser, Content: prompt})
		reply, err := s.completer.Complete(ctx, transcript)
		if err != nil {
			return nil, fmt.Errorf("reading: interpret %s: %w", d.Position, err)
		}
		transcript = append(transcript, llm.Message{Role: llm.RoleAssistant, Content: reply})
		entries = append(entries, Entry{
			Card: &CardRef{Name: d.Card.Name, Image: d.Card.ImageURL()},
			Text: reply,
		})
	}

	transcript = append(transcript, llm.Message{Role: llm.RoleUser, Content: summaryPrompt})
	summary, err := s.completer.Complete(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("reading: summarize: %w", err)
	}
	entries = append(entries, Entry{Text: summary})
	return entries, nil
}
