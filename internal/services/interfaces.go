package services

import (
	"github.com/shopspring/decimal"

	"campuscash/internal/export"
	"campuscash/internal/models"
	"campuscash/internal/stats"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateBudget(userID string, budget decimal.Decimal) (*models.User, error)
}

// TransactionStore persists transactions. Every method is scoped by owner:
// an id that belongs to another owner must behave exactly like a missing id
// and yield apperrors.ErrTransactionNotFound.
type TransactionStore interface {
	Create(t *models.Transaction) error
	// List returns the owner's transactions in creation order.
	List(ownerID string) ([]models.Transaction, error)
	Get(ownerID, id string) (*models.Transaction, error)
	Update(ownerID, id string, patch models.TransactionPatch) (*models.Transaction, error)
	Delete(ownerID, id string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, transactionType models.TransactionType, amount decimal.Decimal, category, note string) (*models.Transaction, error)
	GetUserTransactions(userID string) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// StatsServicer defines the contract for aggregate views over a user's transactions.
type StatsServicer interface {
	GetStats(userID string) (*stats.Summary, error)
	ExportSummary(userID string) (*export.Document, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
