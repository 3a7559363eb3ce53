// Package tokenledger defines the minimal token capability the governance
// engine consumes from the two fungible-token ledgers it depends on (one for
// voting power, one for stake custody), and ships a reference in-memory
// implementation for tests, the CLI, and the demo HTTP server.
package tokenledger

import (
	"math/big"
	"sync"

	"hcgov/crypto"
	"hcgov/hcerrors"
)

// Ledger is the capability surface the engine calls at precisely the moments
// named in the spec: balance sampling for votes, locked transfers for
// stakes, and compensation-fee payouts. It is the only source of token
// motion; a failing call aborts the caller's operation with no state change.
type Ledger interface {
	BalanceOf(account crypto.Address) *big.Int
	Transfer(to crypto.Address, amount *big.Int) error
	TransferFrom(owner, to crypto.Address, amount *big.Int) error
	// CustodyAddress returns the account this ledger implementation treats
	// as "the engine" for the purposes of staking TransferFrom calls: the
	// recipient of stake() deposits and the source of Transfer() payouts.
	CustodyAddress() crypto.Address
}

// InMemory is a reference Ledger backed by in-process balances and
// allowances, guarded by a mutex so it is safe to share between an engine
// and its tests or CLI driver. The engine itself owns the account
// representing its own custody balance; callers mint balances directly via
// Mint and approve the engine via Approve.
type InMemory struct {
	mu         sync.Mutex
	balances   map[string]*big.Int
	allowances map[string]*big.Int // key: owner|spender
}

// NewInMemory constructs an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{
		balances:   make(map[string]*big.Int),
		allowances: make(map[string]*big.Int),
	}
}

func allowanceKey(owner, spender crypto.Address) string {
	return string(owner.Bytes()) + "|" + string(spender.Bytes())
}

// Mint credits amount to account, used by tests and the CLI to seed initial
// balances; it is not part of the Ledger capability interface the engine
// consumes.
func (l *InMemory) Mint(account crypto.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := string(account.Bytes())
	current, ok := l.balances[key]
	if !ok {
		current = big.NewInt(0)
	}
	l.balances[key] = new(big.Int).Add(current, amount)
}

// Approve sets the allowance spender may draw from owner via TransferFrom.
func (l *InMemory) Approve(owner, spender crypto.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[allowanceKey(owner, spender)] = new(big.Int).Set(amount)
}

// Allowance returns the amount spender may currently draw from owner.
func (l *InMemory) Allowance(owner, spender crypto.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	amount, ok := l.allowances[allowanceKey(owner, spender)]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(amount)
}

// BalanceOf implements Ledger.
func (l *InMemory) BalanceOf(account crypto.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.balances[string(account.Bytes())]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(current)
}

// Transfer implements Ledger: the ledger itself moves amount from its own
// custody balance (the engine's address) to to. It is used exclusively for
// payouts the engine makes from its own custody (compensation fees, deposit
// refunds, unstakes).
func (l *InMemory) Transfer(to crypto.Address, amount *big.Int) error {
	return l.move(engineCustodyAddress, to, amount)
}

// TransferFrom implements Ledger: moves amount from owner to the named
// recipient, requiring that owner has approved at least amount to the
// recipient beforehand (modeling an ERC-20-style allowance).
func (l *InMemory) TransferFrom(owner, to crypto.Address, amount *big.Int) error {
	l.mu.Lock()
	key := allowanceKey(owner, to)
	allowed, ok := l.allowances[key]
	if !ok || allowed.Cmp(amount) < 0 {
		l.mu.Unlock()
		return hcerrors.ErrInsufficientAllowance
	}
	l.mu.Unlock()
	if err := l.move(owner, to, amount); err != nil {
		return err
	}
	l.mu.Lock()
	l.allowances[key] = new(big.Int).Sub(allowed, amount)
	l.mu.Unlock()
	return nil
}

func (l *InMemory) move(from, to crypto.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return hcerrors.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fromKey := string(from.Bytes())
	fromBal, ok := l.balances[fromKey]
	if !ok {
		fromBal = big.NewInt(0)
	}
	if fromBal.Cmp(amount) < 0 {
		return hcerrors.ErrSenderDoesNotHaveEnoughFunds
	}
	l.balances[fromKey] = new(big.Int).Sub(fromBal, amount)
	toKey := string(to.Bytes())
	toBal, ok := l.balances[toKey]
	if !ok {
		toBal = big.NewInt(0)
	}
	l.balances[toKey] = new(big.Int).Add(toBal, amount)
	return nil
}

// engineCustodyAddress is the canonical address under which the in-memory
// ledger tracks the engine's own custody balance (locked stakes, escrowed
// deposits). It is all-zero, distinguishable from any real ECDSA-derived
// address with overwhelming probability.
var engineCustodyAddress = crypto.MustNewAddress(crypto.HCPrefix, make([]byte, 20))

// CustodyBalance reports the ledger's own balance, i.e. the sum the engine
// currently holds in escrow across all proposals. Tests use this to assert
// stake-conservation invariant 3 of the spec.
func (l *InMemory) CustodyBalance() *big.Int {
	return l.BalanceOf(engineCustodyAddress)
}

// CustodyAddress implements Ledger.
func (l *InMemory) CustodyAddress() crypto.Address { return engineCustodyAddress }
