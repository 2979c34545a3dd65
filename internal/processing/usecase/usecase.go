package usecase

import (
	"context"

	"github.com/fhlgrn/ReadyReply/internal/processing/domain"
)

// Trigger names what started a run
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

// State is the pipeline lifecycle: Idle -> Running -> (Idle | Failed)
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateFailed  State = "failed"
)

// Result summarizes one run
type Result struct {
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
	Message   string `json:"message"`
}

// Pipeline drafts replies for every enabled filter, one email at a time
type Pipeline interface {
	Run(ctx context.Context, trigger Trigger) (*Result, error)
	State() State
}

// ProcessingUsecase reads the audit trail and counters
type ProcessingUsecase interface {
	ListLogs(page, limit int) ([]*domain.ProcessingLog, *domain.Pagination, error)
	GetLog(id uint) (*domain.ProcessingLog, error)
	GetStats() (*domain.AppStats, error)
}
