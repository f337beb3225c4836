package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/retry"
	"go.uber.org/zap"
)

// AssistantFallback is answered when the model cannot be reached.
const AssistantFallback = "Désolé, l'assistant est momentanément indisponible. Réessayez dans un instant."

const maxQuestionLength = 2000

// TextModel generates an answer from a prompt.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssistantService answers free-text questions about the business from a
// snapshot of its data. It never changes anything.
type AssistantService struct {
	model    TextModel
	policy   retry.Policy
	timeout  time.Duration
	products repository.ProductRepository
	reports  *ReportService
	sessions *SessionService
	log      *zap.Logger
}

// NewAssistantService creates a new assistant service. A nil model disables
// the assistant.
func NewAssistantService(
	model TextModel,
	policy retry.Policy,
	timeout time.Duration,
	products repository.ProductRepository,
	reports *ReportService,
	sessions *SessionService,
	log *zap.Logger,
) *AssistantService {
	return &AssistantService{
		model:    model,
		policy:   policy,
		timeout:  timeout,
		products: products,
		reports:  reports,
		sessions: sessions,
		log:      log,
	}
}

// AssistantAnswer is the reply to a question. Degraded is set when the
// fallback message was returned.
type AssistantAnswer struct {
	Answer   string `json:"answer"`
	Degraded bool   `json:"degraded"`
}

// Enabled reports whether a model is configured.
func (s *AssistantService) Enabled() bool {
	return s.model != nil
}

// Ask answers a question. Model failures are logged and turned into the
// fallback answer; only bad input and a missing model are errors.
func (s *AssistantService) Ask(ctx context.Context, question string) (*AssistantAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperror.NewFieldError("question", "is required")
	}
	if len(question) > maxQuestionLength {
		return nil, apperror.NewFieldError("question", "is too long")
	}
	if s.model == nil {
		return nil, ErrAssistantDisabled
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	prompt := "Données du restaurant (JSON):\n" + string(snapshot) + "\n\nQuestion: " + question

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	attempts := 0
	var answer string
	err = retry.Do(ctx, s.policy, func(ctx context.Context) error {
		attempts++
		var err error
		answer, err = s.model.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		s.log.Warn("assistant unavailable", zap.Int("attempts", attempts), zap.Error(err))
		return &AssistantAnswer{Answer: AssistantFallback, Degraded: true}, nil
	}
	return &AssistantAnswer{Answer: strings.TrimSpace(answer)}, nil
}

type productSnapshot struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
}

type businessSnapshot struct {
	Currency    string            `json:"currency"`
	Today       *Summary          `json:"today"`
	Trend       []TrendPoint      `json:"last_7_days"`
	Products    []productSnapshot `json:"products"`
	LowStock    []string          `json:"low_stock"`
	CashSession *SessionStatus    `json:"cash_session,omitempty"`
}

func (s *AssistantService) snapshot(ctx context.Context) ([]byte, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.reports.Summary(ctx, "", "")
	if err != nil {
		return nil, err
	}
	trend, err := s.reports.Trend(ctx)
	if err != nil {
		return nil, err
	}

	snap := businessSnapshot{
		Currency: s.reports.store.Currency,
		Today:    today,
		Trend:    trend,
		Products: make([]productSnapshot, 0, len(products)),
		LowStock: []string{},
	}
	for _, p := range products {
		snap.Products = append(snap.Products, productSnapshot{
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price.StringFixed(2),
			Stock:    p.Stock,
		})
		if p.IsLowStock(s.reports.store.LowStockThreshold) {
			snap.LowStock = append(snap.LowStock, p.Name)
		}
	}

	status, err := s.sessions.Current(ctx)
	switch {
	case err == nil:
		snap.CashSession = status
	case !errors.Is(err, ErrNoOpenSession):
		return nil, err
	}

	return json.Marshal(snap)
}
