package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// fallbackAnswer is used for general messages when no language model is configured.
const fallbackAnswer = "I can help you find documents. Try asking for a file by name or topic."

// AssistantService routes a message to file search or a conversational answer.
type AssistantService struct {
	search     driving.SearchService
	lexical    *LexicalRanker
	semantic   *SemanticRanker
	extractor  driven.TextExtractor
	classifier driven.IntentClassifier
	answerer   driven.Answerer
	settings   domain.SearchSettings
}

// NewAssistantService creates an assistant. extractor, classifier and
// answerer are optional (can be nil).
func NewAssistantService(
	search driving.SearchService,
	semantic *SemanticRanker,
	extractor driven.TextExtractor,
	classifier driven.IntentClassifier,
	answerer driven.Answerer,
	settings domain.SearchSettings,
) *AssistantService {
	return &AssistantService{
		search:     search,
		lexical:    NewLexicalRanker(),
		semantic:   semantic,
		extractor:  extractor,
		classifier: classifier,
		answerer:   answerer,
		settings:   settings,
	}
}

// Handle classifies the message and answers it.
func (s *AssistantService) Handle(
	ctx context.Context, session *domain.Session, message string, opts domain.SearchOptions,
) (*domain.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}

	intent, err := s.classify(ctx, message)
	if err != nil {
		return nil, err
	}
	logger.Debug("Intent: %s", intent.Kind)

	if intent.Kind != domain.IntentFileSearch {
		return s.answer(ctx, intent, message)
	}
	return s.findFiles(ctx, session, intent, message, opts)
}

func (s *AssistantService) classify(ctx context.Context, message string) (domain.Intent, error) {
	if s.classifier == nil {
		return domain.Intent{Kind: domain.IntentFileSearch, Data: message}, nil
	}
	return s.classifier.Classify(ctx, message)
}

func (s *AssistantService) answer(ctx context.Context, intent domain.Intent, message string) (*domain.Reply, error) {
	reply := &domain.Reply{Intent: intent, Answer: fallbackAnswer}
	if s.answerer == nil {
		return reply, nil
	}

	answer, err := s.answerer.Answer(ctx, message)
	if err != nil {
		logger.Warn("Answer failed: %v", err)
		return reply, nil
	}
	reply.Answer = answer
	return reply, nil
}

// findFiles tries query variants until one yields candidates, falls back
// to recent files when none does, then ranks lexically and semantically.
func (s *AssistantService) findFiles(
	ctx context.Context, session *domain.Session, intent domain.Intent, message string, opts domain.SearchOptions,
) (*domain.Reply, error) {
	query := strings.TrimSpace(intent.Data)
	if query == "" {
		query = message
	}

	plan := Decompose(query)
	reply := &domain.Reply{Intent: intent, Plan: &plan, Files: []domain.File{}}
	logger.Debug("Year: %q, core: %q, variants: %v", plan.Year, plan.CoreIntent, plan.Variants)

	var candidates []domain.File
	for _, variant := range plan.Variants {
		if ctx.Err() != nil {
			break
		}
		files, err := s.search.CollectHits(ctx, session, variant)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			reply.Query = variant
			candidates = files
			break
		}
	}
	if len(candidates) == 0 && ctx.Err() == nil {
		recent, err := s.search.Recent(ctx, session)
		if err != nil {
			return nil, err
		}
		candidates = recent
	}
	if len(candidates) == 0 {
		return reply, nil
	}

	ranked := s.lexical.Rank(ctx, candidates, plan.Year, CoreTerms(plan.CoreIntent), s.textOf(session))

	topK := opts.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}
	if s.semantic == nil || !s.settings.Semantic || opts.SkipSemantic {
		reply.Files = limit(ranked, topK)
		return reply, nil
	}

	reply.Files = limit(s.semantic.Rank(ctx, query, ranked, topK), topK)
	return reply, nil
}

// textOf returns the extractor bound to a session. Without an extractor
// files are matched by name.
func (s *AssistantService) textOf(session *domain.Session) TextFunc {
	return func(ctx context.Context, f domain.File) (string, error) {
		if s.extractor == nil {
			return f.Name, nil
		}
		return s.extractor.TextOf(ctx, session, f)
	}
}
