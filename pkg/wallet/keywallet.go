package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// KeyWallet is an Adapter backed by a local private key and per-chain RPC
// endpoints. Connecting to a chain verifies the endpoint actually serves
// that chain id before reporting the switch as effective.
type KeyWallet struct {
	mu      sync.Mutex
	logger  *zap.Logger
	address common.Address
	hasKey  bool
	rpcURLs map[uint64]string
	chainID uint64
}

// KeyWalletConfig holds key wallet configuration.
type KeyWalletConfig struct {
	PrivateKeyHex string            // empty = no signer connected
	ChainID       uint64            // initially connected chain
	RPCURLs       map[uint64]string // chain id -> RPC endpoint
	Logger        *zap.Logger
}

// NewKeyWallet creates a key-backed wallet adapter.
func NewKeyWallet(cfg *KeyWalletConfig) (*KeyWallet, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	w := &KeyWallet{
		logger:  cfg.Logger,
		rpcURLs: cfg.RPCURLs,
		chainID: cfg.ChainID,
	}

	if cfg.PrivateKeyHex != "" {
		privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}

		publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.New("derive public key")
		}

		w.address = crypto.PubkeyToAddress(*publicKey)
		w.hasKey = true

		cfg.Logger.Info("wallet-initialized",
			zap.String("address", w.address.Hex()),
			zap.Uint64("chain-id", cfg.ChainID))
	}

	return w, nil
}

// Signer returns the signer address, or false when no key is loaded.
func (w *KeyWallet) Signer() (common.Address, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.address, w.hasKey
}

// ChainID returns the currently connected chain id.
func (w *KeyWallet) ChainID() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID
}

// SwitchChain connects to the RPC endpoint for the requested chain and
// verifies its reported chain id. The returned id is whatever chain the
// wallet ends up on; it equals the request only when the switch succeeded.
func (w *KeyWallet) SwitchChain(ctx context.Context, chainID uint64) (uint64, error) {
	w.mu.Lock()
	current := w.chainID
	rpcURL, ok := w.rpcURLs[chainID]
	w.mu.Unlock()

	if current == chainID {
		return current, nil
	}

	if !ok {
		w.logger.Warn("chain-switch-refused-no-rpc", zap.Uint64("chain-id", chainID))
		return current, nil
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return current, fmt.Errorf("dial RPC: %w", err)
	}
	defer client.Close()

	reported, err := client.ChainID(ctx)
	if err != nil {
		return current, fmt.Errorf("get chain id: %w", err)
	}

	if reported.Uint64() != chainID {
		w.logger.Warn("chain-switch-rpc-mismatch",
			zap.Uint64("requested", chainID),
			zap.Uint64("reported", reported.Uint64()))
		return current, nil
	}

	w.mu.Lock()
	w.chainID = chainID
	w.mu.Unlock()

	w.logger.Info("chain-switched", zap.Uint64("chain-id", chainID))
	return chainID, nil
}
