package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wellnesscare/wellness-platform/internal/chat"
	"github.com/wellnesscare/wellness-platform/internal/entities"
	"github.com/wellnesscare/wellness-platform/internal/keywords"
	"github.com/wellnesscare/wellness-platform/internal/language"
	"github.com/wellnesscare/wellness-platform/internal/observability/metrics"
)

// ErrInvalidRequest is returned when owner id or message is missing
var ErrInvalidRequest = errors.New("user id and message required")

const (
	// disclaimer is appended to every bot reply.
	disclaimer = "\n\n⚕️ *Disclaimer:* I provide general health information. " +
		"Always consult a qualified medical professional for personal diagnosis or treatment."

	// titleLimit caps the auto-generated title of a new transcript.
	titleLimit = 40
)

// SendRequest is one inbound chat message.
type SendRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

// SendResult is the composed reply plus resolution metadata.
type SendResult struct {
	Response string   `json:"response"`
	ChatID   string   `json:"chat_id"`
	Language string   `json:"language"`
	Entities []string `json:"entities"`
}

// Service orchestrates one chat exchange: language handling, entity
// extraction, response resolution and transcript persistence. It holds no
// per-request state, so one instance serves all requests concurrently.
type Service struct {
	keywords  keywords.Repository
	store     chat.Store
	bridge    language.Bridge
	extractor entities.Extractor
	resolver  *Resolver
	canonical string
	logger    *slog.Logger
	metrics   *metrics.ChatMetrics
	now       func() time.Time
}

// NewService wires the orchestrator. canonical is the language the keyword
// rules are written in.
func NewService(
	kw keywords.Repository,
	store chat.Store,
	bridge language.Bridge,
	extractor entities.Extractor,
	resolver *Resolver,
	canonical string,
	logger *slog.Logger,
) *Service {
	if canonical == "" {
		canonical = "en"
	}
	if bridge == nil {
		bridge = language.Noop{CanonicalLanguage: canonical}
	}
	if extractor == nil {
		extractor = entities.LexiconExtractor{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		keywords:  kw,
		store:     store,
		bridge:    bridge,
		extractor: extractor,
		resolver:  resolver,
		canonical: canonical,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics attaches pipeline metrics. Nil-safe when never called.
func (s *Service) WithMetrics(m *metrics.ChatMetrics) *Service {
	s.metrics = m
	return s
}

// Send runs the full pipeline for one message. Adapter failures degrade
// (original text, empty entities, canonical language); storage failures
// abort the request, and nothing is persisted before the reply is composed.
func (s *Service) Send(ctx context.Context, req SendRequest) (result SendResult, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.ObserveMessage(status, time.Since(start).Seconds())
	}()

	message := strings.TrimSpace(req.Message)
	if req.UserID == "" || message == "" {
		return SendResult{}, ErrInvalidRequest
	}

	detected := s.detectLanguage(ctx, message)
	canonicalText := message
	if detected != s.canonical {
		canonicalText = s.toCanonical(ctx, message, detected)
	}

	found := s.extractEntities(ctx, canonicalText)

	snapshot, err := s.keywords.GetAll(ctx)
	if err != nil {
		return SendResult{}, fmt.Errorf("chatbot: load keyword snapshot: %w", err)
	}

	reply := s.resolver.Resolve(canonicalText, snapshot)
	if len(found) > 0 {
		reply += fmt.Sprintf("\n\n🔍 I noticed you mentioned: %s.", strings.Join(found, ", "))
	}
	reply += disclaimer

	if detected != s.canonical {
		reply = s.fromCanonical(ctx, reply, detected)
	}

	now := s.now()
	exchange := []chat.Message{
		{Text: message, Sender: chat.SenderUser, Timestamp: now},
		{Text: reply, Sender: chat.SenderBot, Timestamp: now},
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID, err = s.store.Create(ctx, req.UserID, titleFor(message), exchange)
		if err != nil {
			return SendResult{}, fmt.Errorf("chatbot: create transcript: %w", err)
		}
	} else if err := s.store.Append(ctx, chatID, exchange); err != nil {
		return SendResult{}, fmt.Errorf("chatbot: append transcript: %w", err)
	}

	if found == nil {
		found = []string{}
	}
	return SendResult{
		Response: reply,
		ChatID:   chatID,
		Language: detected,
		Entities: found,
	}, nil
}

func (s *Service) detectLanguage(ctx context.Context, text string) string {
	det, err := s.bridge.Detect(ctx, text)
	if err != nil || det.Language == "" {
		if err != nil {
			s.logger.Warn("language detection degraded", "error", err)
			s.metrics.ObserveAdapterDegraded("detection")
		}
		return s.canonical
	}
	return det.Language
}

func (s *Service) toCanonical(ctx context.Context, text, source string) string {
	tr, err := s.bridge.Translate(ctx, text, source, s.canonical)
	if err != nil || tr.Text == "" {
		if err != nil {
			s.logger.Warn("inbound translation degraded", "error", err, "source", source)
			s.metrics.ObserveAdapterDegraded("translation")
		}
		return text
	}
	return tr.Text
}

func (s *Service) fromCanonical(ctx context.Context, text, target string) string {
	tr, err := s.bridge.Translate(ctx, text, s.canonical, target)
	if err != nil || tr.Text == "" {
		if err != nil {
			s.logger.Warn("outbound translation degraded", "error", err, "target", target)
			s.metrics.ObserveAdapterDegraded("translation")
		}
		return text
	}
	return tr.Text
}

func (s *Service) extractEntities(ctx context.Context, text string) []string {
	found, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.logger.Warn("entity extraction degraded", "error", err)
		s.metrics.ObserveAdapterDegraded("extraction")
		return nil
	}
	return found
}

// titleFor derives a transcript title from the raw message.
func titleFor(message string) string {
	runes := []rune(message)
	if len(runes) <= titleLimit {
		return message
	}
	return string(runes[:titleLimit])
}
