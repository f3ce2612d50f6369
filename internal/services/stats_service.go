package services

import (
	"campuscash/internal/export"
	"campuscash/internal/stats"
)

// statsService computes aggregates from a fresh snapshot on every call.
type statsService struct {
	store     TransactionStore
	formatter *export.Formatter
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(store TransactionStore, formatter *export.Formatter) StatsServicer {
	return &statsService{store: store, formatter: formatter}
}

// GetStats returns totals, balance and the expense breakdown for the user.
func (s *statsService) GetStats(userID string) (*stats.Summary, error) {
	snapshot, err := s.store.List(userID)
	if err != nil {
		return nil, err
	}
	summary := stats.Compute(snapshot)
	return &summary, nil
}

// ExportSummary renders the text summary with the most recent transactions.
func (s *statsService) ExportSummary(userID string) (*export.Document, error) {
	snapshot, err := s.store.List(userID)
	if err != nil {
		return nil, err
	}
	summary := stats.Compute(snapshot)
	recent := stats.RankRecent(snapshot, export.RecentLimit)
	return s.formatter.Document(summary, recent), nil
}
