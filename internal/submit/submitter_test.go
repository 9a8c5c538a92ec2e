package submit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftfolio/batch-lister/internal/execsvc"
	"github.com/nftfolio/batch-lister/internal/listing"
	"github.com/nftfolio/batch-lister/pkg/types"
	"go.uber.org/zap"
)

type fakeWallet struct {
	address common.Address
	hasKey  bool
	chainID uint64
}

func (w *fakeWallet) Signer() (common.Address, bool) {
	return w.address, w.hasKey
}

func (w *fakeWallet) ChainID() uint64 {
	return w.chainID
}

func (w *fakeWallet) SwitchChain(ctx context.Context, chainID uint64) (uint64, error) {
	w.chainID = chainID
	return chainID, nil
}

// fakeService replays canned step sequences through onProgress.
type fakeService struct {
	events [][]types.ExecutionStep
	err    error

	mu       sync.Mutex
	payloads []types.ListingPayload
	signer   common.Address
	calls    int
}

func (s *fakeService) SubmitListings(ctx context.Context, payloads []types.ListingPayload, signer common.Address, onProgress execsvc.ProgressFunc) error {
	s.mu.Lock()
	s.payloads = payloads
	s.signer = signer
	s.calls++
	s.mu.Unlock()

	for _, steps := range s.events {
		onProgress(steps)
	}
	return s.err
}

type fakeRecorder struct {
	mu       sync.Mutex
	attempts []*Attempt
}

func (r *fakeRecorder) RecordAttempt(ctx context.Context, attempt *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return nil
}

func completeSteps() []types.ExecutionStep {
	return []types.ExecutionStep{
		{
			Kind:  types.StepKindTransaction,
			Items: []types.StepItem{{Status: types.StepItemComplete, OrderIndexes: []int{0}}},
		},
		{
			Kind:  types.StepKindSignature,
			Items: []types.StepItem{{Status: types.StepItemComplete, OrderIndexes: []int{0}}},
		},
	}
}

func incompleteSteps() []types.ExecutionStep {
	return []types.ExecutionStep{
		{
			Kind:  types.StepKindTransaction,
			Items: []types.StepItem{{Status: types.StepItemIncomplete, OrderIndexes: []int{0}}},
		},
	}
}

func newTestSubmitter(t *testing.T, service execsvc.Service, onFinished func()) *Submitter {
	t.Helper()

	s, err := New(&Config{
		Wallet:     &fakeWallet{address: common.HexToAddress("0x1111"), hasKey: true},
		Service:    service,
		Recorder:   &fakeRecorder{},
		Logger:     zap.NewNop(),
		OnFinished: onFinished,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSubmit_MissingSigner(t *testing.T) {
	s, err := New(&Config{
		Wallet:  &fakeWallet{hasKey: false},
		Service: &fakeService{},
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1", 1)}, testETH, testMarketplaces)

	var prereq *types.PrereqError
	if !errors.As(err, &prereq) {
		t.Fatalf("error = %v, want PrereqError", err)
	}
	if prereq.Message != "missing a signer" {
		t.Errorf("message = %q, want %q", prereq.Message, "missing a signer")
	}
}

func TestSubmit_NilService(t *testing.T) {
	s, err := New(&Config{
		Wallet: &fakeWallet{address: common.HexToAddress("0x1111"), hasKey: true},
		Logger: zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1", 1)}, testETH, testMarketplaces)

	var prereq *types.PrereqError
	if !errors.As(err, &prereq) {
		t.Fatalf("error = %v, want PrereqError", err)
	}
}

func TestSubmit_CompletesAndReducesProgress(t *testing.T) {
	service := &fakeService{
		events: [][]types.ExecutionStep{incompleteSteps(), completeSteps()},
	}
	s := newTestSubmitter(t, service, nil)

	err := s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1.5", 2)}, testETH, testMarketplaces)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	progress, ok := s.Progress()
	if !ok {
		t.Fatal("Progress() ok = false after events")
	}
	if progress.State != StateComplete {
		t.Errorf("State = %v, want complete", progress.State)
	}

	// Snapshot finalized the price before handoff
	if got := service.payloads[0].WeiPrice; got != "3000000000000000000" {
		t.Errorf("WeiPrice = %s, want 3000000000000000000", got)
	}
	if service.signer != common.HexToAddress("0x1111") {
		t.Errorf("signer = %s, want 0x1111", service.signer.Hex())
	}
}

func TestSubmit_FailureWrapsExecutionError(t *testing.T) {
	cause := errors.New("wallet rejected the signature")
	service := &fakeService{
		events: [][]types.ExecutionStep{incompleteSteps()},
		err:    cause,
	}
	s := newTestSubmitter(t, service, nil)

	err := s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1", 1)}, testETH, testMarketplaces)

	var execErr *types.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want ExecutionError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not preserved through wrapping")
	}

	if s.Err() == nil {
		t.Error("Err() = nil after failed attempt")
	}

	// Progress stays on the failed step; no automatic retry happened
	progress, ok := s.Progress()
	if !ok {
		t.Fatal("Progress() ok = false")
	}
	if progress.State != StateApproving {
		t.Errorf("State = %v, want approving", progress.State)
	}
	if service.calls != 1 {
		t.Errorf("service calls = %d, want 1", service.calls)
	}
}

func TestSubmit_InvalidPriceIsPrereq(t *testing.T) {
	s := newTestSubmitter(t, &fakeService{}, nil)

	err := s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "bogus", 1)}, testETH, testMarketplaces)

	var prereq *types.PrereqError
	if !errors.As(err, &prereq) {
		t.Fatalf("error = %v, want PrereqError", err)
	}
}

func TestDismiss_FiresOnFinishedOnce(t *testing.T) {
	fired := 0
	service := &fakeService{
		events: [][]types.ExecutionStep{completeSteps()},
	}
	s := newTestSubmitter(t, service, func() { fired++ })

	err := s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1", 1)}, testETH, testMarketplaces)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	s.Dismiss()
	s.Dismiss()

	if fired != 1 {
		t.Errorf("onFinished fired %d times, want 1", fired)
	}
}

func TestDismiss_FailedAttemptDoesNotFire(t *testing.T) {
	fired := 0
	service := &fakeService{
		events: [][]types.ExecutionStep{completeSteps()},
		err:    errors.New("late failure"),
	}
	s := newTestSubmitter(t, service, func() { fired++ })

	_ = s.Submit(context.Background(), []listing.CandidateListing{testListing("1", "1", 1)}, testETH, testMarketplaces)

	s.Dismiss()

	if fired != 0 {
		t.Errorf("onFinished fired %d times for failed attempt, want 0", fired)
	}
}

func TestSubmit_RecordsAttempt(t *testing.T) {
	recorder := &fakeRecorder{}
	s, err := New(&Config{
		Wallet:   &fakeWallet{address: common.HexToAddress("0x1111"), hasKey: true},
		Service:  &fakeService{events: [][]types.ExecutionStep{completeSteps()}},
		Recorder: recorder,
		Logger:   zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = s.Submit(context.Background(), []listing.CandidateListing{
		testListing("1", "1", 1),
		testListing("2", "1", 1),
	}, testETH, testMarketplaces)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(recorder.attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(recorder.attempts))
	}

	attempt := recorder.attempts[0]
	if attempt.Status != "complete" {
		t.Errorf("status = %s, want complete", attempt.Status)
	}
	if attempt.ListingCount != 2 {
		t.Errorf("listing count = %d, want 2", attempt.ListingCount)
	}
}
