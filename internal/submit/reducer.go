package submit

import (
	"fmt"
	"strings"

	"github.com/nftfolio/batch-lister/pkg/types"
	"go.uber.org/zap"
)

// State is the submission phase. There is no failed state: a failure is an
// error held alongside Approving.
type State int

const (
	// StateApproving covers both the on-chain approval and off-chain
	// signature phases.
	StateApproving State = iota
	// StateComplete is terminal.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateApproving:
		return "approving"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Progress is the reduced view of one progress event. Each event fully
// replaces the previous one; nothing is merged across events.
type Progress struct {
	State        State
	TotalSteps   int // count of materialized steps
	StepProgress int // fully-completed steps, 0-based
	CurrentStep  types.ExecutionStep
	Affected     []SnapshotEntry // snapshot entries the current step covers
	Title        string
}

// Reduce collapses an execution-service progress event into display state.
// Steps without items are not yet materialized and are ignored. The first
// step holding an incomplete item is the current one; when no incomplete
// item exists anywhere, the submission is complete. Returns false when no
// step has materialized yet.
func Reduce(steps []types.ExecutionStep, snap *Snapshot, marketplaces []types.Marketplace, logger *zap.Logger) (Progress, bool) {
	materialized := make([]types.ExecutionStep, 0, len(steps))
	for _, step := range steps {
		if len(step.Items) > 0 {
			materialized = append(materialized, step)
		}
	}

	if len(materialized) == 0 {
		return Progress{}, false
	}

	for i, step := range materialized {
		for j := range step.Items {
			if step.Items[j].Status != types.StepItemIncomplete {
				continue
			}

			affected := affectedEntries(snap, &step.Items[j], logger)
			return Progress{
				State:        StateApproving,
				TotalSteps:   len(materialized),
				StepProgress: i,
				CurrentStep:  step,
				Affected:     affected,
				Title:        stepTitle(step, affected, marketplaces),
			}, true
		}
	}

	last := materialized[len(materialized)-1]
	var lastItem *types.StepItem
	if n := len(last.Items); n > 0 {
		lastItem = &last.Items[n-1]
	}

	affected := affectedEntries(snap, lastItem, logger)
	return Progress{
		State:        StateComplete,
		TotalSteps:   len(materialized),
		StepProgress: len(materialized),
		CurrentStep:  last,
		Affected:     affected,
		Title:        stepTitle(last, affected, marketplaces),
	}, true
}

// affectedEntries resolves a step item to the snapshot entries it covers.
// Without an explicit index list it falls back to the final snapshot entry,
// which is only correct when a single listing remains; the fallback is
// logged when the snapshot holds more.
func affectedEntries(snap *Snapshot, item *types.StepItem, logger *zap.Logger) []SnapshotEntry {
	if len(snap.Entries) == 0 {
		return nil
	}

	if item != nil && item.OrderIndexes != nil {
		entries := make([]SnapshotEntry, 0, len(item.OrderIndexes))
		for _, idx := range item.OrderIndexes {
			if idx >= 0 && idx < len(snap.Entries) {
				entries = append(entries, snap.Entries[idx])
			}
		}
		return entries
	}

	if len(snap.Entries) > 1 && logger != nil {
		logger.Warn("affected-listing-fallback",
			zap.Int("snapshot-size", len(snap.Entries)))
	}
	return []SnapshotEntry{snap.Entries[len(snap.Entries)-1]}
}

// stepTitle derives the wallet-prompt title for the current step.
func stepTitle(step types.ExecutionStep, affected []SnapshotEntry, marketplaces []types.Marketplace) string {
	switch step.Kind {
	case types.StepKindTransaction:
		orderKind := "exchange"
		if len(affected) > 0 && affected[0].Payload.OrderKind != "" {
			orderKind = affected[0].Payload.OrderKind
		}
		return fmt.Sprintf("Approve %s to access item\nin your wallet", capitalize(orderKind))
	case types.StepKindSignature:
		names := marketplaceNames(affected, marketplaces)
		return fmt.Sprintf("Confirm listings on %s\nin your wallet", strings.Join(names, " and "))
	default:
		return step.Description
	}
}

// marketplaceNames returns the distinct display names targeted by the
// affected listings, in first-seen order.
func marketplaceNames(affected []SnapshotEntry, marketplaces []types.Marketplace) []string {
	var names []string
	seen := make(map[string]bool)

	for _, entry := range affected {
		for _, m := range marketplaces {
			if m.Orderbook != entry.Payload.Orderbook || seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			names = append(names, m.Name)
		}
	}
	return names
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
