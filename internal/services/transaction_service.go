package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"campuscash/internal/categories"
	apperrors "campuscash/internal/errors"
	"campuscash/internal/events"
	"campuscash/internal/logger"
	"campuscash/internal/models"
	"campuscash/internal/stats"
	"campuscash/internal/uuid"
)

// transactionService handles transaction-related business logic on top of a
// TransactionStore. The same service backs the API and the local CLI.
type transactionService struct {
	store     TransactionStore
	tables    categories.Tables
	publisher events.Publisher
	now       func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store TransactionStore, tables categories.Tables, publisher events.Publisher) TransactionServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &transactionService{
		store:     store,
		tables:    tables,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateTransaction validates and stores a new transaction dated now.
func (s *transactionService) CreateTransaction(
	userID string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	category string,
	note string,
) (*models.Transaction, error) {
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !models.AmountInRange(amount) {
		return nil, apperrors.ErrAmountOutOfRange
	}
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category is required")
	}
	if !s.tables.Contains(transactionType, category) {
		return nil, apperrors.ErrInvalidCategory
	}

	now := s.now()
	transaction := &models.Transaction{
		Base:     models.Base{ID: uuid.NewAt(now)},
		UserID:   userID,
		Amount:   amount.Round(2),
		Category: category,
		Type:     transactionType,
		Note:     note,
		Date:     now,
	}

	if err := s.store.Create(transaction); err != nil {
		return nil, err
	}

	s.publish(events.TransactionCreated, transaction)
	return transaction, nil
}

// GetUserTransactions returns all of the user's transactions, most recent first.
func (s *transactionService) GetUserTransactions(userID string) ([]models.Transaction, error) {
	snapshot, err := s.store.List(userID)
	if err != nil {
		return nil, err
	}
	return stats.RankRecent(snapshot, 0), nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	return s.store.Get(userID, transactionID)
}

// UpdateTransaction applies a partial update. The type of a transaction is
// fixed at creation; a patch may repeat it but not change it.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch models.TransactionPatch) (*models.Transaction, error) {
	existing, err := s.store.Get(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		if *patch.Type != existing.Type {
			return nil, apperrors.ErrTypeImmutable
		}
	}

	if patch.Amount != nil {
		if !models.AmountInRange(*patch.Amount) {
			return nil, apperrors.ErrAmountOutOfRange
		}
		if patch.Amount.IsNegative() {
			return nil, apperrors.ErrNegativeAmount
		}
		rounded := patch.Amount.Round(2)
		patch.Amount = &rounded
	}

	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category cannot be empty")
		}
		if !s.tables.Contains(existing.Type, category) {
			return nil, apperrors.ErrInvalidCategory
		}
		patch.Category = &category
	}

	if patch.Empty() {
		return existing, nil
	}

	updated, err := s.store.Update(userID, transactionID, patch)
	if err != nil {
		return nil, err
	}

	s.publish(events.TransactionUpdated, updated)
	return updated, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	existing, err := s.store.Get(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(userID, transactionID); err != nil {
		return err
	}

	s.publish(events.TransactionDeleted, existing)
	return nil
}

// publish sends an event; failures are logged and never reach the caller.
func (s *transactionService) publish(eventType events.EventType, t *models.Transaction) {
	event := events.NewTransactionEvent(eventType, t, s.now())
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		logger.Get().Warnw("failed to publish transaction event",
			"error", err,
			"type", eventType,
			"transaction_id", t.ID,
		)
	}
}
