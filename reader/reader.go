// Package reader serves chain reads across every configured RPC node for a
// network at once: each call fans out to all nodes and the first successful
// answer wins. Only when every node has failed does the caller get an error,
// carrying each node's failure joined together.
package reader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/pikchain/pikchain/networks"
)

var DEFAULT_ADDRESS string = "0x0000000000000000000000000000000000000000"

// Receipts for a just-submitted tx routinely take a few blocks to appear, so
// the wait loop polls at a multiple of the chain's block time.
const DEFAULT_POLL_INTERVAL time.Duration = 5 * time.Second

type EthReader struct {
	nodes map[string]*OneNodeReader

	// PollInterval controls how often WaitMined re-queries for a receipt.
	PollInterval time.Duration
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]*OneNodeReader{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return &EthReader{
		nodes:        ns,
		PollInterval: DEFAULT_POLL_INTERVAL,
	}
}

// NewEthReaderForChain builds a reader over the chain's default node set,
// honoring the network's node env var override when set.
func NewEthReaderForChain(chainID int64, nodeOverrides map[string]string) (*EthReader, error) {
	network, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return nil, err
	}
	nodes := network.GetDefaultNodes()
	if len(nodeOverrides) > 0 {
		nodes = nodeOverrides
	}
	r := NewEthReaderGeneric(nodes)
	r.PollInterval = 2 * network.GetBlockTime()
	if r.PollInterval < time.Second {
		r.PollInterval = time.Second
	}
	return r, nil
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type getCodeResponse struct {
	Code  []byte
	Error error
}

func (er *EthReader) GetCode(address string) (code []byte, err error) {
	resCh := make(chan getCodeResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			code, err := n.GetCode(address)
			resCh <- getCodeResponse{
				Code:  code,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Code, result.Error
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type transactionReceiptResponse struct {
	Receipt *types.Receipt
	Error   error
}

func (er *EthReader) TransactionReceipt(txHash string) (receipt *types.Receipt, err error) {
	resCh := make(chan transactionReceiptResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			receipt, err := n.TransactionReceipt(txHash)
			resCh <- transactionReceiptResponse{
				Receipt: receipt,
				Error:   wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Receipt, result.Error
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type headerByNumberResponse struct {
	Header *types.Header
	Error  error
}

func (er *EthReader) HeaderByNumber(number int64) (*types.Header, error) {
	resCh := make(chan headerByNumberResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			header, err := n.HeaderByNumber(number)
			resCh <- headerByNumberResponse{
				Header: header,
				Error:  wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Header, result.Error
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type getBlockResponse struct {
	Block uint64
	Error error
}

func (er *EthReader) CurrentBlock() (uint64, error) {
	resCh := make(chan getBlockResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			block, err := n.CurrentBlock()
			resCh <- getBlockResponse{
				Block: block,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Block, result.Error
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type readContractToBytesResponse struct {
	Data  []byte
	Error error
}

func (er *EthReader) ReadContractToBytes(atBlock int64, from string, caddr string, a *abi.ABI, method string, args ...interface{}) ([]byte, error) {
	resCh := make(chan readContractToBytesResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			data, err := n.ReadContractToBytes(atBlock, from, caddr, a, method, args...)
			resCh <- readContractToBytesResponse{
				Data:  data,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Data, result.Error
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ReadContractWithABI(result interface{}, caddr string, a *abi.ABI, method string, args ...interface{}) error {
	responseBytes, err := er.ReadContractToBytes(-1, DEFAULT_ADDRESS, caddr, a, method, args...)
	if err != nil {
		return err
	}
	return a.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) ReadContractWithABIAndFrom(result interface{}, from string, caddr string, a *abi.ABI, method string, args ...interface{}) error {
	responseBytes, err := er.ReadContractToBytes(-1, from, caddr, a, method, args...)
	if err != nil {
		return err
	}
	return a.UnpackIntoInterface(result, method, responseBytes)
}

// WaitMined blocks until a receipt exists for txHash, polling at the
// reader's interval. There is no deadline of its own: a pending transaction
// is waited on until it lands or ctx is cancelled. Transient lookup errors
// are treated the same as a missing receipt and retried on the next tick.
func (er *EthReader) WaitMined(ctx context.Context, txHash string) (*types.Receipt, error) {
	ticker := time.NewTicker(er.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := er.TransactionReceipt(txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
