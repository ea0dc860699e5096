package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	defaultReadTimeout    = 10 * time.Second
	defaultConfirmTimeout = 90 * time.Second
	defaultPollInterval   = 2 * time.Second
)

type Config struct {
	RPCURL             string
	PrivateKey         string
	RegistryAddress    string
	PlatformAddress    string
	CertificateAddress string
	BadgeAddress       string
}

// backend is the slice of ethclient.Client the gateway needs.
type backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// TxResult is the normalized outcome of a confirmed write transaction.
type TxResult struct {
	Hash        string
	BlockNumber uint64
	GasUsed     uint64
}

// Client is the single point of contact with the chain. It owns one signing
// key and one RPC connection; writeMu serializes every state-changing call so
// that at most one transaction from the backend signer is unconfirmed at a
// time (out-of-order nonces are rejected by the chain).
type Client struct {
	eth     backend
	chainID *big.Int
	key     *ecdsa.PrivateKey
	signer  common.Address

	registryAddr    common.Address
	platformAddr    common.Address
	certificateAddr common.Address
	badgeAddr       common.Address

	writeMu sync.Mutex

	readTimeout    time.Duration
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("%w: RPC_URL is missing", ErrNotConfigured)
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: BACKEND_SIGNER_PRIVATE_KEY is missing", ErrNotConfigured)
	}
	for name, addr := range map[string]string{
		"COURSE_REGISTRY_ADDRESS":     cfg.RegistryAddress,
		"COURSE_PLATFORM_ADDRESS":     cfg.PlatformAddress,
		"STUDENT_CERTIFICATE_ADDRESS": cfg.CertificateAddress,
		"TEACHER_BADGE_ADDRESS":       cfg.BadgeAddress,
	} {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("%w: %s is missing or not a hex address", ErrNotConfigured, name)
		}
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid signer private key: %v", ErrNotConfigured, err)
	}

	eth, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial RPC endpoint: %v", ErrNotConfigured, err)
	}

	chainID, err := eth.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch chain id: %v", ErrNotConfigured, err)
	}

	return &Client{
		eth:             eth,
		chainID:         chainID,
		key:             key,
		signer:          crypto.PubkeyToAddress(key.PublicKey),
		registryAddr:    common.HexToAddress(cfg.RegistryAddress),
		platformAddr:    common.HexToAddress(cfg.PlatformAddress),
		certificateAddr: common.HexToAddress(cfg.CertificateAddress),
		badgeAddr:       common.HexToAddress(cfg.BadgeAddress),
		readTimeout:     defaultReadTimeout,
		confirmTimeout:  defaultConfirmTimeout,
		pollInterval:    defaultPollInterval,
	}, nil
}

// SignerAddress returns the backend signing identity.
func (c *Client) SignerAddress() string {
	return c.signer.Hex()
}

func (c *Client) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}

	values, err := contract.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return values, nil
}

// transact submits a signed state-changing call and blocks until it is
// confirmed or the confirmation wait expires. The write mutex stays held
// through confirmation; callers must not already hold it.
func (c *Client) transact(ctx context.Context, to common.Address, gasLimit uint64, data []byte) (*TxResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	nonce, err := c.eth.PendingNonceAt(ctx, c.signer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signer nonce: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	if gasLimit == 0 {
		gasLimit, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{From: c.signer, To: &to, Data: data})
		if err != nil {
			return nil, fmt.Errorf("gas estimation failed: %w", err)
		}
	}

	tx := types.NewTransaction(nonce, to, new(big.Int), gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	return c.waitMined(ctx, signed)
}

// waitMined polls for the receipt of a submitted transaction. It never
// resubmits: exceeding the wait yields ErrConfirmTimeout and the caller
// decides what to do, since a resubmission could double the side effect.
func (c *Client) waitMined(ctx context.Context, tx *types.Transaction) (*TxResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, tx.Hash())
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, &RevertError{
					Hash:   tx.Hash().Hex(),
					Reason: c.revertReason(ctx, tx, receipt.BlockNumber),
				}
			}
			return &TxResult{
				Hash:        tx.Hash().Hex(),
				BlockNumber: receipt.BlockNumber.Uint64(),
				GasUsed:     receipt.GasUsed,
			}, nil
		}
		// Both ethereum.NotFound and transient RPC failures mean "keep
		// polling"; only the deadline ends the wait.
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: tx %s", ErrConfirmTimeout, tx.Hash().Hex())
		case <-ticker.C:
		}
	}
}

// revertReason replays the reverted call at the block it was mined in to
// recover the revert string the node reports.
func (c *Client) revertReason(ctx context.Context, tx *types.Transaction, blockNumber *big.Int) string {
	msg := ethereum.CallMsg{
		From:     c.signer,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}
	if _, err := c.eth.CallContract(ctx, msg, blockNumber); err != nil {
		return err.Error()
	}
	return "execution reverted"
}
