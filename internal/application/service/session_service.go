package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/cashcount"
	"github.com/sangkips/restopos/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionService opens and closes the cash drawer of this terminal.
type SessionService struct {
	tx            repository.Transactor
	sessions      repository.CashSessionRepository
	sales         repository.SaleRepository
	ledger        *CartLedger
	notifier      Notifier
	store         StoreSettings
	denominations []int64
	log           *zap.Logger
	now           func() time.Time
}

// NewSessionService creates a new cash session service
func NewSessionService(
	tx repository.Transactor,
	sessions repository.CashSessionRepository,
	sales repository.SaleRepository,
	ledger *CartLedger,
	notifier Notifier,
	store StoreSettings,
	denominations []int64,
	log *zap.Logger,
) *SessionService {
	return &SessionService{
		tx:            tx,
		sessions:      sessions,
		sales:         sales,
		ledger:        ledger,
		notifier:      notifier,
		store:         store,
		denominations: denominations,
		log:           log,
		now:           time.Now,
	}
}

// CashCount is a counted drawer: its total and one line per denomination.
type CashCount struct {
	Total decimal.Decimal  `json:"total"`
	Lines []cashcount.Line `json:"lines"`
}

// CountCash totals a denomination breakdown without storing anything.
func (s *SessionService) CountCash(count cashcount.Count) (*CashCount, error) {
	if err := cashcount.Validate(count); err != nil {
		return nil, apperror.NewFieldError("denominations", err.Error())
	}
	tally := cashcount.FromCount(count)
	return &CashCount{Total: tally.Total(), Lines: tally.Lines()}, nil
}

// Denominations are the bills and coins offered by the counting screen.
func (s *SessionService) Denominations() []int64 {
	return s.denominations
}

// OpenInput represents the open session input. Count wins over
// OpeningBalance when both are given.
type OpenInput struct {
	CashierID      string
	CashierName    string
	Count          cashcount.Count
	OpeningBalance *decimal.Decimal
}

// OpenResult is the opened session plus the locations that still had an
// order in progress when it was opened.
type OpenResult struct {
	Session           *entity.CashSession `json:"session"`
	OccupiedLocations []string            `json:"occupied_locations"`
}

// Open starts a session on this terminal. Only one may be open at a time.
func (s *SessionService) Open(ctx context.Context, input *OpenInput) (*OpenResult, error) {
	if strings.TrimSpace(input.CashierName) == "" {
		return nil, apperror.NewFieldError("cashier_name", "is required")
	}
	balance, count, err := s.countedAmount(input.Count, input.OpeningBalance, "opening_balance")
	if err != nil {
		return nil, err
	}

	session := &entity.CashSession{
		TerminalID:     s.store.TerminalID,
		CashierID:      input.CashierID,
		CashierName:    strings.TrimSpace(input.CashierName),
		Status:         enum.SessionOpen,
		OpenedAt:       s.now(),
		OpeningBalance: balance,
		OpeningCount:   count,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := s.sessions.GetOpen(ctx, s.store.TerminalID)
		if err != nil {
			return err
		}
		if open != nil {
			return ErrSessionAlreadyOpen
		}
		return s.sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	occupied := s.ledger.Occupied()
	s.log.Info("cash session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("cashier", session.CashierName),
		zap.String("opening_balance", balance.StringFixed(2)))
	if len(occupied) > 0 {
		s.notifier.Notify(ctx, "Session ouverte",
			"Commandes en cours sur: "+strings.Join(occupied, ", "), enum.SeverityWarning)
	}
	s.notifier.Notify(ctx, "Session ouverte",
		fmt.Sprintf("Fond de caisse %s %s", balance.StringFixed(2), s.store.Currency), enum.SeveritySuccess)

	return &OpenResult{Session: session, OccupiedLocations: occupied}, nil
}

// SessionStatus is the open session with its live expected balance.
type SessionStatus struct {
	Session         *entity.CashSession `json:"session"`
	ExpectedBalance decimal.Decimal     `json:"expected_balance"`
	SalesCount      int                 `json:"sales_count"`
	RefundCount     int                 `json:"refund_count"`
}

// Current returns the open session or ErrNoOpenSession.
func (s *SessionService) Current(ctx context.Context) (*SessionStatus, error) {
	session, err := s.openSession(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.totals(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SessionStatus{
		Session:         session,
		ExpectedBalance: session.OpeningBalance.Add(totals.net),
		SalesCount:      totals.salesCount,
		RefundCount:     totals.refundCount,
	}, nil
}

// ExpectedBalance is the opening balance plus the signed totals of the
// session's sales. It is recomputed on every call.
func (s *SessionService) ExpectedBalance(ctx context.Context, session *entity.CashSession) (decimal.Decimal, error) {
	totals, err := s.totals(ctx, session)
	if err != nil {
		return decimal.Zero, err
	}
	return session.OpeningBalance.Add(totals.net), nil
}

// CloseInput represents the close session input. Count wins over
// CountedBalance when both are given.
type CloseInput struct {
	Count          cashcount.Count
	CountedBalance *decimal.Decimal
	Notes          string
}

// ClosingReport summarizes a closed session; it feeds the Z ticket.
type ClosingReport struct {
	Session           *entity.CashSession        `json:"session"`
	OpeningBalance    decimal.Decimal            `json:"opening_balance"`
	ExpectedBalance   decimal.Decimal            `json:"expected_balance"`
	CountedBalance    decimal.Decimal            `json:"counted_balance"`
	Discrepancy       decimal.Decimal            `json:"discrepancy"`
	OccupiedLocations []string                   `json:"occupied_locations"`
	SalesCount        int                        `json:"sales_count"`
	RefundCount       int                        `json:"refund_count"`
	TotalsByPayment   map[string]decimal.Decimal `json:"totals_by_payment"`
	CountLines        []cashcount.Line           `json:"count_lines,omitempty"`
}

// Close audits the drawer and closes the open session. Occupied locations
// and a non-zero discrepancy are reported, never blocking.
func (s *SessionService) Close(ctx context.Context, input *CloseInput) (*ClosingReport, error) {
	session, err := s.openSession(ctx)
	if err != nil {
		return nil, err
	}
	counted, count, err := s.countedAmount(input.Count, input.CountedBalance, "counted_balance")
	if err != nil {
		return nil, err
	}

	totals, err := s.totals(ctx, session)
	if err != nil {
		return nil, err
	}
	expected := session.OpeningBalance.Add(totals.net)
	discrepancy := counted.Sub(expected)
	closedAt := s.now()

	session.Status = enum.SessionClosed
	session.ClosedAt = &closedAt
	session.ClosingBalance = &counted
	session.ClosingCount = count
	session.ExpectedBalance = &expected
	session.Discrepancy = &discrepancy
	session.Notes = input.Notes
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	occupied := s.ledger.Occupied()
	report := s.report(session, totals, occupied)

	s.log.Info("cash session closed",
		zap.String("session_id", session.ID.String()),
		zap.String("expected", expected.StringFixed(2)),
		zap.String("counted", counted.StringFixed(2)),
		zap.String("discrepancy", discrepancy.StringFixed(2)))
	if len(occupied) > 0 {
		s.notifier.Notify(ctx, "Clôture de caisse",
			"Commandes encore en cours sur: "+strings.Join(occupied, ", "), enum.SeverityWarning)
	}
	if !discrepancy.IsZero() {
		s.log.Warn("cash discrepancy", zap.String("discrepancy", discrepancy.StringFixed(2)))
		s.notifier.Notify(ctx, "Écart de caisse",
			fmt.Sprintf("Écart de %s %s", discrepancy.StringFixed(2), s.store.Currency), enum.SeverityWarning)
	}
	s.notifier.Notify(ctx, "Session clôturée",
		fmt.Sprintf("Attendu %s, compté %s", expected.StringFixed(2), counted.StringFixed(2)), enum.SeverityInfo)

	return report, nil
}

// Report rebuilds the closing report of a closed session.
func (s *SessionService) Report(ctx context.Context, id uuid.UUID) (*ClosingReport, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Cash session")
	}
	if session.IsOpen() {
		return nil, apperror.NewConflictError("La session est encore ouverte")
	}
	totals, err := s.totals(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.report(session, totals, nil), nil
}

// History lists closed sessions of this terminal, newest first.
func (s *SessionService) History(ctx context.Context, params pagination.Params) (*pagination.Page[entity.CashSession], error) {
	params = params.Normalize()
	sessions, total, err := s.sessions.ListClosed(ctx, s.store.TerminalID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(sessions, params, total), nil
}

func (s *SessionService) openSession(ctx context.Context) (*entity.CashSession, error) {
	session, err := s.sessions.GetOpen(ctx, s.store.TerminalID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoOpenSession
	}
	return session, nil
}

func (s *SessionService) countedAmount(count cashcount.Count, amount *decimal.Decimal, field string) (decimal.Decimal, cashcount.Count, error) {
	if len(count) > 0 {
		if err := cashcount.Validate(count); err != nil {
			return decimal.Zero, nil, apperror.NewFieldError("denominations", err.Error())
		}
		return cashcount.Total(count), cashcount.FromCount(count).Count(), nil
	}
	if amount == nil {
		return decimal.Zero, nil, apperror.NewFieldError(field, "is required")
	}
	if amount.IsNegative() {
		return decimal.Zero, nil, apperror.NewFieldError(field, "must not be negative")
	}
	return amount.Round(2), nil, nil
}

type sessionTotals struct {
	net         decimal.Decimal
	salesCount  int
	refundCount int
	byPayment   map[string]decimal.Decimal
}

func (s *SessionService) totals(ctx context.Context, session *entity.CashSession) (sessionTotals, error) {
	sales, err := s.sales.ListForSession(ctx, session.ID)
	if err != nil {
		return sessionTotals{}, fmt.Errorf("load session sales: %w", err)
	}

	t := sessionTotals{net: decimal.Zero, byPayment: make(map[string]decimal.Decimal)}
	for i := range sales {
		sale := &sales[i]
		if !session.Owns(sale) || sale.Status.RevenueSign() == 0 {
			continue
		}
		signed := sale.SignedTotal()
		t.net = t.net.Add(signed)
		if sale.Status == enum.SaleStatusRefunded {
			t.refundCount++
		} else {
			t.salesCount++
		}
		method := string(sale.PaymentMethod)
		if method == "" {
			method = string(enum.PaymentCash)
		}
		t.byPayment[method] = t.byPayment[method].Add(signed)
	}
	return t, nil
}

func (s *SessionService) report(session *entity.CashSession, totals sessionTotals, occupied []string) *ClosingReport {
	r := &ClosingReport{
		Session:           session,
		OpeningBalance:    session.OpeningBalance,
		ExpectedBalance:   session.OpeningBalance.Add(totals.net),
		OccupiedLocations: occupied,
		SalesCount:        totals.salesCount,
		RefundCount:       totals.refundCount,
		TotalsByPayment:   totals.byPayment,
	}
	if r.OccupiedLocations == nil {
		r.OccupiedLocations = []string{}
	}
	if session.ClosingBalance != nil {
		r.CountedBalance = *session.ClosingBalance
	}
	r.Discrepancy = r.CountedBalance.Sub(r.ExpectedBalance)
	if len(session.ClosingCount) > 0 {
		r.CountLines = cashcount.FromCount(session.ClosingCount).Lines()
	}
	return r
}
