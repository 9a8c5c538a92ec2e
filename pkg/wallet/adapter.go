package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Adapter exposes the wallet state the submission flow needs: the current
// signer (if any), the connected chain, and a network-switch operation.
type Adapter interface {
	// Signer returns the current signer address, or false when no wallet
	// is connected.
	Signer() (common.Address, bool)

	// ChainID returns the currently connected chain id.
	ChainID() uint64

	// SwitchChain switches the wallet to the given chain and returns the
	// chain id actually in effect afterwards. Callers must check the
	// returned id; a wallet may refuse the switch without erroring.
	SwitchChain(ctx context.Context, chainID uint64) (uint64, error)
}
