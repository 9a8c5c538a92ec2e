package submit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nftfolio/batch-lister/internal/execsvc"
	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/pkg/types"
	"github.com/nftfolio/batch-lister/pkg/wallet"
	"go.uber.org/zap"
)

// Attempt is the persisted record of one submission.
type Attempt struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	ListingCount int
	Status       string // "complete" or "failed"
	Error        string
}

// Recorder persists submission attempts.
type Recorder interface {
	RecordAttempt(ctx context.Context, attempt *Attempt) error
}

// Config holds submitter configuration.
type Config struct {
	Wallet     wallet.Adapter
	Service    execsvc.Service
	Recorder   Recorder
	Logger     *zap.Logger
	OnFinished func() // fired once when a completed submission is dismissed
}

// Submitter drives one submission attempt at a time: snapshot, hand off to
// the execution service, and reduce its progress stream into display state.
// A failed step does not retry; the error is surfaced and the wallet prompt
// stays on the failed step until the caller resubmits or dismisses.
type Submitter struct {
	wallet   wallet.Adapter
	service  execsvc.Service
	recorder Recorder
	logger   *zap.Logger

	mu            sync.Mutex
	inFlight      bool
	snapshot      *Snapshot
	marketplaces  []types.Marketplace
	progress      Progress
	hasProgress   bool
	err           error
	onFinished    func()
	finishedFired bool
}

// New creates a submitter.
func New(cfg *Config) (*Submitter, error) {
	if cfg.Wallet == nil {
		return nil, fmt.Errorf("wallet cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Submitter{
		wallet:     cfg.Wallet,
		service:    cfg.Service,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger,
		onFinished: cfg.OnFinished,
	}, nil
}

// Submit snapshots the listing set and blocks until the execution service
// resolves the attempt. Precondition failures return a PrereqError before
// any snapshot is taken; execution failures return an ExecutionError and
// leave the last progress state in place for inspection.
func (s *Submitter) Submit(ctx context.Context, listings []listing.CandidateListing, currency types.Currency, marketplaces []types.Marketplace) error {
	signer, ok := s.wallet.Signer()
	if !ok {
		return &types.PrereqError{Message: "missing a signer"}
	}
	if s.service == nil {
		return &types.PrereqError{Message: "execution client was not initialized"}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return &types.PrereqError{Message: "a submission is already in progress"}
	}

	snap, err := BuildSnapshot(listings, currency, time.Now())
	if err != nil {
		s.mu.Unlock()
		return &types.PrereqError{Message: err.Error()}
	}

	s.inFlight = true
	s.snapshot = snap
	s.marketplaces = marketplaces
	s.progress = Progress{}
	s.hasProgress = false
	s.err = nil
	s.finishedFired = false
	s.mu.Unlock()

	s.logger.Info("submission-starting",
		zap.String("signer", signer.Hex()),
		zap.Int("listings", len(snap.Entries)))

	started := time.Now()
	err = s.service.SubmitListings(ctx, snap.Payloads(), signer, s.handleProgress)
	SubmissionDurationSeconds.Observe(time.Since(started).Seconds())

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		s.err = &types.ExecutionError{Message: "listing submission failed", Cause: err}
		err = s.err
	}
	s.mu.Unlock()

	status := "complete"
	if err != nil {
		status = "failed"
		s.logger.Error("submission-failed", zap.Error(err))
	} else {
		s.logger.Info("submission-complete", zap.Int("listings", len(snap.Entries)))
	}
	SubmissionsTotal.WithLabelValues(status).Inc()

	s.record(ctx, snap, status, err)
	return err
}

// handleProgress reduces each execution-service event into display state.
func (s *Submitter) handleProgress(steps []types.ExecutionStep) {
	ProgressEventsTotal.Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, ok := Reduce(steps, s.snapshot, s.marketplaces, s.logger)
	if !ok {
		return
	}

	s.progress = progress
	s.hasProgress = true

	s.logger.Debug("submission-progress",
		zap.String("state", progress.State.String()),
		zap.Int("step", progress.StepProgress),
		zap.Int("total-steps", progress.TotalSteps))
}

// Progress returns the latest reduced progress. The second return is false
// until the first step has materialized.
func (s *Submitter) Progress() (Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress, s.hasProgress
}

// Err returns the terminal error of the last attempt, if any.
func (s *Submitter) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dismiss closes out the attempt. The finished callback fires exactly once,
// and only when the attempt actually completed. Dismissing does not abort an
// in-flight execution call; cancel the Submit context for that.
func (s *Submitter) Dismiss() {
	s.mu.Lock()
	fire := s.hasProgress &&
		s.progress.State == StateComplete &&
		s.err == nil &&
		!s.inFlight &&
		!s.finishedFired
	if fire {
		s.finishedFired = true
	}
	cb := s.onFinished
	s.mu.Unlock()

	if fire && cb != nil {
		cb()
	}
}

func (s *Submitter) record(ctx context.Context, snap *Snapshot, status string, submitErr error) {
	if s.recorder == nil {
		return
	}

	attempt := &Attempt{
		ID:           uuid.New(),
		CreatedAt:    snap.CreatedAt,
		ListingCount: len(snap.Entries),
		Status:       status,
	}
	if submitErr != nil {
		attempt.Error = submitErr.Error()
	}

	if err := s.recorder.RecordAttempt(ctx, attempt); err != nil {
		s.logger.Warn("record-attempt-failed", zap.Error(err))
	}
}
