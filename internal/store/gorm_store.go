// Package store provides the TransactionStore backends: a GORM-backed store
// for the API and a single-blob store for the local CLI.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "campuscash/internal/errors"
	"campuscash/internal/models"
	"campuscash/internal/uuid"
)

// GormStore keeps transactions in a relational table, one row per record.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create inserts t.
func (s *GormStore) Create(t *models.Transaction) error {
	if err := s.db.Create(t).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns the owner's transactions in creation order.
func (s *GormStore) List(ownerID string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if !uuid.IsValid(ownerID) {
		return transactions, nil
	}
	if err := s.db.Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Get returns the owner's transaction with the given id.
func (s *GormStore) Get(ownerID, id string) (*models.Transaction, error) {
	// malformed ids cannot exist; answering early also keeps PostgreSQL
	// from rejecting them as bad uuid syntax
	if !uuid.IsValid(id) || !uuid.IsValid(ownerID) {
		return nil, apperrors.ErrTransactionNotFound
	}

	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update writes only the patched columns. Concurrent updates of the same
// record are last-write-wins.
func (s *GormStore) Update(ownerID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{}
	if patch.Amount != nil {
		columns["amount"] = *patch.Amount
	}
	if patch.Category != nil {
		columns["category"] = *patch.Category
	}
	if patch.Type != nil {
		columns["type"] = *patch.Type
	}
	if patch.Note != nil {
		columns["note"] = *patch.Note
	}
	if len(columns) == 0 {
		return transaction, nil
	}

	result := s.db.Model(transaction).Where("user_id = ?", ownerID).Updates(columns)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	patch.Apply(transaction)
	return transaction, nil
}

// Delete removes the owner's transaction with the given id.
func (s *GormStore) Delete(ownerID, id string) error {
	if !uuid.IsValid(id) || !uuid.IsValid(ownerID) {
		return apperrors.ErrTransactionNotFound
	}

	result := s.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
