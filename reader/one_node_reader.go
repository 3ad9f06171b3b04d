package reader

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const TIMEOUT time.Duration = 4 * time.Second

// OneNodeReader issues single RPC calls against one node. The connection is
// dialed lazily on first use so constructing readers for every configured
// node stays free.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) initConnection() error {
	client, err := rpc.Dial(onr.NodeURL())
	if err != nil {
		return fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(onr.client)
	return nil
}

func (onr *OneNodeReader) EthClient() (*ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.ethClient != nil {
		return onr.ethClient, nil
	}
	err := onr.initConnection()
	return onr.ethClient, err
}

func (onr *OneNodeReader) GetCode(address string) (code []byte, err error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	addr := common.HexToAddress(address)
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.CodeAt(timeout, addr, nil)
}

func (onr *OneNodeReader) TransactionReceipt(txHash string) (receipt *types.Receipt, err error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	hash := common.HexToHash(txHash)
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.TransactionReceipt(timeout, hash)
}

func (onr *OneNodeReader) HeaderByNumber(number int64) (*types.Header, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	var numberBig *big.Int
	if number > -1 {
		numberBig = big.NewInt(number)
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.HeaderByNumber(timeout, numberBig)
}

func (onr *OneNodeReader) CurrentBlock() (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.BlockNumber(timeout)
}

func (onr *OneNodeReader) ReadContractToBytes(atBlock int64, from string, caddr string, a *abi.ABI, method string, args ...interface{}) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	contract := common.HexToAddress(caddr)
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	var blockBig *big.Int
	if atBlock > -1 {
		blockBig = big.NewInt(atBlock)
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		From: common.HexToAddress(from),
		To:   &contract,
		Data: data,
	}, blockBig)
}
