package contracttest

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"

	"gicoinDesk/internal/contract"
)

// Handler answers one contract read. It receives the unpacked call
// arguments and returns the method outputs in ABI order.
type Handler func(args []interface{}) ([]interface{}, error)

// Caller is an in-memory ethereum.ContractCaller keyed by method name.
type Caller struct {
	mu       sync.Mutex
	abi      abi.ABI
	handlers map[string]Handler
	calls    map[string]int
}

// NewCaller returns a Caller with no handlers; unhandled methods fail.
func NewCaller() *Caller {
	parsed, err := contract.ABI()
	if err != nil {
		panic(err)
	}
	return &Caller{abi: parsed, handlers: make(map[string]Handler), calls: make(map[string]int)}
}

// Handle registers a handler for method.
func (c *Caller) Handle(method string, h Handler) *Caller {
	c.mu.Lock()
	c.handlers[method] = h
	c.mu.Unlock()
	return c
}

// Return registers a constant result for method.
func (c *Caller) Return(method string, values ...interface{}) *Caller {
	return c.Handle(method, func([]interface{}) ([]interface{}, error) { return values, nil })
}

// Fail makes method return err.
func (c *Caller) Fail(method string, err error) *Caller {
	return c.Handle(method, func([]interface{}) ([]interface{}, error) { return nil, err })
}

// Calls returns how many times method was called.
func (c *Caller) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// CallContract implements ethereum.ContractCaller.
func (c *Caller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(msg.Data) < 4 {
		return nil, fmt.Errorf("short call data")
	}
	for name, method := range c.abi.Methods {
		if !bytes.Equal(method.ID, msg.Data[:4]) {
			continue
		}
		args, err := method.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.calls[name]++
		h, ok := c.handlers[name]
		c.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("no handler for %s", name)
		}
		values, err := h(args)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(values...)
	}
	return nil, fmt.Errorf("unknown selector %x", msg.Data[:4])
}
