// Package inspector produces wallet activity metrics by querying an
// Ethereum node over JSON-RPC and expanding the observations with
// documented heuristics.
package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/reflekt/repute/internal/domain/wallet"
	"github.com/reflekt/repute/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Inspector supplies a point-in-time analysis per queried address.
type Inspector interface {
	Analyze(ctx context.Context, address string) (wallet.Analysis, error)
}

// ENSResolver looks up the reverse ENS name for an address. A nil
// resolver means ENS is unavailable and every wallet reads as unnamed.
type ENSResolver func(ctx context.Context, address string) (string, error)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s looks like an Ethereum address.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Default inspector configuration constants.
const (
	defaultTimeout = 10 * time.Second
	weiDecimals    = 18
)

// NodeInspector implements Inspector against a JSON-RPC endpoint.
type NodeInspector struct {
	rpcURL     string
	client     *http.Client
	resolveENS ENSResolver
	now        func() time.Time
}

// New creates a NodeInspector for the given endpoint with options.
func New(rpcURL string, opts ...Option) *NodeInspector {
	n := &NodeInspector{
		rpcURL: rpcURL,
		client: &http.Client{Timeout: defaultTimeout},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Analyze inspects a wallet: two node calls for transaction count and
// balance, then heuristic derivation of the remaining metrics.
func (n *NodeInspector) Analyze(ctx context.Context, address string) (wallet.Analysis, error) {
	if !IsValidAddress(address) {
		return wallet.Analysis{}, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	metrics.RecordInspectorRequest()

	txCount, err := n.transactionCount(ctx, address)
	if err != nil {
		metrics.RecordInspectorError()
		return wallet.Analysis{}, err
	}
	balance, err := n.balance(ctx, address)
	if err != nil {
		metrics.RecordInspectorError()
		return wallet.Analysis{}, err
	}

	m := deriveMetrics(address, txCount, balance)

	if n.resolveENS != nil {
		// ENS failures degrade to an unnamed wallet rather than failing
		// the whole analysis.
		if name, ensErr := n.resolveENS(ctx, address); ensErr == nil {
			m.ENSName = name
		}
	}

	return wallet.Analysis{
		Metrics:       m,
		IsActive:      txCount > 0,
		ActivityLevel: wallet.CategorizeActivity(txCount),
		Timestamp:     n.now(),
	}, nil
}

// transactionCount fetches eth_getTransactionCount at the latest block.
func (n *NodeInspector) transactionCount(ctx context.Context, address string) (int, error) {
	hex, err := n.call(ctx, "eth_getTransactionCount", []any{address, "latest"})
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseUint(strings.TrimPrefix(hex, "0x"), 16, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: bad transaction count %q: %w", ErrRPC, hex, err)
	}
	return int(count), nil
}

// balance fetches eth_getBalance and converts wei to ether.
func (n *NodeInspector) balance(ctx context.Context, address string) (float64, error) {
	hex, err := n.call(ctx, "eth_getBalance", []any{address, "latest"})
	if err != nil {
		return 0, err
	}
	wei, ok := new(big.Int).SetString(strings.TrimPrefix(hex, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("%w: bad balance %q", ErrRPC, hex)
	}
	return decimal.NewFromBigInt(wei, -weiDecimals).InexactFloat64(), nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC request expecting a hex-string result.
func (n *NodeInspector) call(ctx context.Context, method string, params []any) (string, error) {
	start := time.Now()
	defer func() {
		metrics.RecordInspectorRPCLatency(float64(time.Since(start).Milliseconds()))
	}()

	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return "", fmt.Errorf("%w: marshal %s: %w", ErrRPC, method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.rpcURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRPC, method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRPC, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: unexpected status %d", ErrRPC, method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return "", fmt.Errorf("%w: decode %s: %w", ErrRPC, method, err)
	}
	if rpcResp.Error != nil {
		return "", fmt.Errorf("%w: %s: %s (code %d)", ErrRPC, method, rpcResp.Error.Message, rpcResp.Error.Code)
	}

	var result string
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return "", fmt.Errorf("%w: decode %s result: %w", ErrRPC, method, err)
	}
	return result, nil
}
