package store

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "campuscash/internal/errors"
	"campuscash/internal/models"
	"campuscash/internal/uuid"
)

const (
	// LocalKey is the key the whole local state is saved under.
	LocalKey = "campuscash_data"
	// LocalOwner is the only owner the local store knows about.
	LocalOwner = "local"
)

// localState is the persisted shape: both lists newest first.
type localState struct {
	Expenses []models.Transaction `json:"expenses"`
	Income   []models.Transaction `json:"income"`
}

// LocalStore keeps every transaction of a single implicit owner in memory
// and rewrites the whole state to its BlobStore after each mutation.
// It is not safe for concurrent use.
type LocalStore struct {
	blobs BlobStore
	state localState
	now   func() time.Time
}

// OpenLocalStore loads the saved state from blobs. A missing key starts
// with two empty lists.
func OpenLocalStore(blobs BlobStore) (*LocalStore, error) {
	s := &LocalStore{blobs: blobs, now: time.Now}

	raw, ok, err := blobs.Load(LocalKey)
	if err != nil {
		return nil, fmt.Errorf("load local state: %w", err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.state); err != nil {
			return nil, fmt.Errorf("decode local state: %w", err)
		}
	}

	// the list a record sits in is what decides its type
	for i := range s.state.Expenses {
		s.state.Expenses[i].Type = models.TransactionTypeExpense
		s.state.Expenses[i].UserID = LocalOwner
	}
	for i := range s.state.Income {
		s.state.Income[i].Type = models.TransactionTypeIncome
		s.state.Income[i].UserID = LocalOwner
	}

	return s, nil
}

func (s *LocalStore) list(kind models.TransactionType) *[]models.Transaction {
	if kind == models.TransactionTypeIncome {
		return &s.state.Income
	}
	return &s.state.Expenses
}

func (s *LocalStore) save() error {
	if s.state.Expenses == nil {
		s.state.Expenses = []models.Transaction{}
	}
	if s.state.Income == nil {
		s.state.Income = []models.Transaction{}
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode local state: %w", err)
	}
	return s.blobs.Save(LocalKey, raw)
}

// Create prepends t to the list for its type and persists.
func (s *LocalStore) Create(t *models.Transaction) error {
	if !t.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}

	now := s.now()
	t.UserID = LocalOwner
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = t.CreatedAt

	list := s.list(t.Type)
	prev := *list
	*list = append([]models.Transaction{*t}, prev...)

	if err := s.save(); err != nil {
		*list = prev
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns every transaction in creation order. Each list is already in
// creation order once reversed, so the two are merged rather than sorted.
func (s *LocalStore) List(ownerID string) ([]models.Transaction, error) {
	out := []models.Transaction{}
	if ownerID != LocalOwner {
		return out, nil
	}

	i, j := len(s.state.Expenses)-1, len(s.state.Income)-1
	for i >= 0 || j >= 0 {
		if j < 0 || (i >= 0 && createdBefore(s.state.Expenses[i], s.state.Income[j])) {
			out = append(out, s.state.Expenses[i])
			i--
			continue
		}
		out = append(out, s.state.Income[j])
		j--
	}
	return out, nil
}

// creationTime falls back to the UUIDv7 prefix, then to Date, for records
// saved without a createdAt.
func creationTime(t models.Transaction) time.Time {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt
	}
	if ts, ok := uuid.Timestamp(t.ID); ok {
		return ts
	}
	return t.Date
}

// createdBefore orders by creation time, then by id.
func createdBefore(a, b models.Transaction) bool {
	ta, tb := creationTime(a), creationTime(b)
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.ID < b.ID
}

func (s *LocalStore) find(ownerID, id string) (*[]models.Transaction, int) {
	if ownerID != LocalOwner {
		return nil, -1
	}
	for _, list := range []*[]models.Transaction{&s.state.Expenses, &s.state.Income} {
		for i := range *list {
			if (*list)[i].ID == id {
				return list, i
			}
		}
	}
	return nil, -1
}

// Get returns the transaction with the given id.
func (s *LocalStore) Get(ownerID, id string) (*models.Transaction, error) {
	list, i := s.find(ownerID, id)
	if list == nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	t := (*list)[i]
	return &t, nil
}

// Update applies patch in place and persists. The record keeps its position.
func (s *LocalStore) Update(ownerID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	list, i := s.find(ownerID, id)
	if list == nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	if patch.Empty() {
		t := (*list)[i]
		return &t, nil
	}
	if patch.Type != nil && *patch.Type != (*list)[i].Type {
		return nil, apperrors.ErrTypeImmutable
	}

	prev := (*list)[i]
	updated := prev
	patch.Apply(&updated)
	updated.UpdatedAt = s.now()
	(*list)[i] = updated

	if err := s.save(); err != nil {
		(*list)[i] = prev
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &updated, nil
}

// Delete removes the transaction with the given id and persists.
func (s *LocalStore) Delete(ownerID, id string) error {
	list, i := s.find(ownerID, id)
	if list == nil {
		return apperrors.ErrTransactionNotFound
	}

	prev := *list
	next := make([]models.Transaction, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	*list = next

	if err := s.save(); err != nil {
		*list = prev
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
