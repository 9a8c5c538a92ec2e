package execsvc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nftfolio/batch-lister/pkg/types"
)

// ProgressFunc receives each progress event: the full ordered step list.
// Every event replaces the previous one.
type ProgressFunc func(steps []types.ExecutionStep)

// Service drives a finalized listing batch through the external signing and
// execution pipeline. SubmitListings blocks until the batch resolves; the
// returned error is the service's rejection (including user-denied wallet
// prompts), with a nil return meaning every step completed.
type Service interface {
	SubmitListings(ctx context.Context, payloads []types.ListingPayload, signer common.Address, onProgress ProgressFunc) error
}
