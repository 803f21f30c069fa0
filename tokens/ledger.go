// Package tokens is the token ledger the reward contract settles against:
// token metadata, liquid and staked balances, delegations and the balances
// contracts hold on behalf of their users.
package tokens

import (
	"comments-contract/db"
	"comments-contract/types"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const ContractName = "tokens"

var (
	ErrTokenNotFound = errors.New("token does not exist")
	ErrOverdrawn     = errors.New("overdrawn balance")
	ErrPrecision     = errors.New("symbol precision mismatch")
	ErrQuantity      = errors.New("quantity must be positive")
)

type TransferEvent struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
}

type Ledger struct {
	store       db.Store
	logs        *types.Logs
	burnAccount string
}

func New(store db.Store, logs *types.Logs, burnAccount string) *Ledger {
	return &Ledger{store: store, logs: logs, burnAccount: burnAccount}
}

func (l *Ledger) GetToken(symbol string) (*types.Token, error) {
	token := &types.Token{Symbol: symbol}
	found, err := db.GetRecord(l.store, token)
	if err != nil || !found {
		return nil, err
	}
	return token, nil
}

// GetBalance never returns nil; a missing record reads as all zero.
func (l *Ledger) GetBalance(account, symbol string) (*types.Balance, error) {
	b := &types.Balance{Account: account, Symbol: symbol}
	found, err := db.GetRecord(l.store, b)
	if err != nil {
		return nil, err
	}
	if !found {
		b.Balance, b.Stake, b.DelegationsIn, b.DelegationsOut = "0", "0", "0", "0"
	}
	return b, nil
}

func (l *Ledger) GetContractBalance(contract, symbol string) (*types.ContractBalance, error) {
	b := &types.ContractBalance{Account: contract, Symbol: symbol}
	found, err := db.GetRecord(l.store, b)
	if err != nil {
		return nil, err
	}
	if !found {
		b.Balance = "0"
	}
	return b, nil
}

// EffectiveStake is stake plus incoming minus outgoing delegations.
func (l *Ledger) EffectiveStake(account, symbol string) (decimal.Decimal, error) {
	b, err := l.GetBalance(account, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return amount(b.Stake).Add(amount(b.DelegationsIn)).Sub(amount(b.DelegationsOut)), nil
}

func (l *Ledger) CreateToken(issuer, symbol string, precision int32) error {
	existing, err := l.GetToken(symbol)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Errorf("token %s already exists", symbol)
	}
	return db.PutRecord(l.store, &types.Token{
		Symbol:    symbol,
		Issuer:    issuer,
		Precision: precision,
		Supply:    "0",
	})
}

func (l *Ledger) EnableStaking(symbol string) error {
	token, err := l.GetToken(symbol)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenNotFound
	}
	token.StakingEnabled = true
	return db.PutRecord(l.store, token)
}

// Issue mints quantity into the liquid balance of to.
func (l *Ledger) Issue(to, symbol string, quantity decimal.Decimal) error {
	token, err := l.mint(symbol, quantity)
	if err != nil {
		return err
	}
	b, err := l.GetBalance(to, symbol)
	if err != nil {
		return err
	}
	b.Balance = format(amount(b.Balance).Add(quantity), token.Precision)
	if err = db.PutRecord(l.store, b); err != nil {
		return err
	}
	l.logs.Emit(ContractName, "issue", TransferEvent{From: ContractName, To: to, Symbol: symbol, Quantity: format(quantity, token.Precision)})
	return nil
}

// IssueToContract mints quantity into the holdings of contract.
func (l *Ledger) IssueToContract(contract, symbol string, quantity decimal.Decimal) error {
	token, err := l.mint(symbol, quantity)
	if err != nil {
		return err
	}
	if err = l.addContractBalance(contract, token, quantity); err != nil {
		return err
	}
	l.logs.Emit(ContractName, "issueToContract", TransferEvent{From: ContractName, To: contract, Symbol: symbol, Quantity: format(quantity, token.Precision)})
	return nil
}

func (l *Ledger) Stake(account, symbol string, quantity decimal.Decimal) error {
	token, err := l.checkQuantity(symbol, quantity)
	if err != nil {
		return err
	}
	if !token.StakingEnabled {
		return errors.Errorf("staking not enabled for %s", symbol)
	}
	b, err := l.GetBalance(account, symbol)
	if err != nil {
		return err
	}
	liquid := amount(b.Balance).Sub(quantity)
	if liquid.Sign() < 0 {
		return ErrOverdrawn
	}
	b.Balance = format(liquid, token.Precision)
	b.Stake = format(amount(b.Stake).Add(quantity), token.Precision)
	return db.PutRecord(l.store, b)
}

// Delegate lends voting stake of from to to; the stake stays owned by from.
func (l *Ledger) Delegate(from, to, symbol string, quantity decimal.Decimal) error {
	token, err := l.checkQuantity(symbol, quantity)
	if err != nil {
		return err
	}
	src, err := l.GetBalance(from, symbol)
	if err != nil {
		return err
	}
	out := amount(src.DelegationsOut).Add(quantity)
	if out.GreaterThan(amount(src.Stake)) {
		return ErrOverdrawn
	}
	src.DelegationsOut = format(out, token.Precision)
	if err = db.PutRecord(l.store, src); err != nil {
		return err
	}
	dst, err := l.GetBalance(to, symbol)
	if err != nil {
		return err
	}
	dst.DelegationsIn = format(amount(dst.DelegationsIn).Add(quantity), token.Precision)
	return db.PutRecord(l.store, dst)
}

func (l *Ledger) TransferFromContract(contract, to, symbol string, quantity decimal.Decimal) error {
	token, err := l.debitContract(contract, symbol, quantity)
	if err != nil {
		return err
	}
	b, err := l.GetBalance(to, symbol)
	if err != nil {
		return err
	}
	b.Balance = format(amount(b.Balance).Add(quantity), token.Precision)
	if err = db.PutRecord(l.store, b); err != nil {
		return err
	}
	l.logs.Emit(ContractName, "transferFromContract", TransferEvent{From: contract, To: to, Symbol: symbol, Quantity: format(quantity, token.Precision)})
	return nil
}

func (l *Ledger) StakeFromContract(contract, to, symbol string, quantity decimal.Decimal) error {
	token, err := l.debitContract(contract, symbol, quantity)
	if err != nil {
		return err
	}
	if !token.StakingEnabled {
		return errors.Errorf("staking not enabled for %s", symbol)
	}
	b, err := l.GetBalance(to, symbol)
	if err != nil {
		return err
	}
	b.Stake = format(amount(b.Stake).Add(quantity), token.Precision)
	if err = db.PutRecord(l.store, b); err != nil {
		return err
	}
	l.logs.Emit(ContractName, "stakeFromContract", TransferEvent{From: contract, To: to, Symbol: symbol, Quantity: format(quantity, token.Precision)})
	return nil
}

// Burn moves quantity from the liquid balance of from to the burn account.
func (l *Ledger) Burn(from, symbol string, quantity decimal.Decimal) error {
	token, err := l.checkQuantity(symbol, quantity)
	if err != nil {
		return err
	}
	src, err := l.GetBalance(from, symbol)
	if err != nil {
		return err
	}
	left := amount(src.Balance).Sub(quantity)
	if left.Sign() < 0 {
		return ErrOverdrawn
	}
	src.Balance = format(left, token.Precision)
	if err = db.PutRecord(l.store, src); err != nil {
		return err
	}
	dst, err := l.GetBalance(l.burnAccount, symbol)
	if err != nil {
		return err
	}
	dst.Balance = format(amount(dst.Balance).Add(quantity), token.Precision)
	if err = db.PutRecord(l.store, dst); err != nil {
		return err
	}
	l.logs.Emit(ContractName, "transfer", TransferEvent{From: from, To: l.burnAccount, Symbol: symbol, Quantity: format(quantity, token.Precision)})
	return nil
}

func (l *Ledger) checkQuantity(symbol string, quantity decimal.Decimal) (*types.Token, error) {
	token, err := l.GetToken(symbol)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, errors.Wrap(ErrTokenNotFound, symbol)
	}
	if quantity.Sign() <= 0 {
		return nil, ErrQuantity
	}
	if !quantity.Truncate(token.Precision).Equal(quantity) {
		return nil, ErrPrecision
	}
	return token, nil
}

func (l *Ledger) mint(symbol string, quantity decimal.Decimal) (*types.Token, error) {
	token, err := l.checkQuantity(symbol, quantity)
	if err != nil {
		return nil, err
	}
	token.Supply = format(amount(token.Supply).Add(quantity), token.Precision)
	if err = db.PutRecord(l.store, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (l *Ledger) addContractBalance(contract string, token *types.Token, quantity decimal.Decimal) error {
	b, err := l.GetContractBalance(contract, token.Symbol)
	if err != nil {
		return err
	}
	b.Balance = format(amount(b.Balance).Add(quantity), token.Precision)
	return db.PutRecord(l.store, b)
}

func (l *Ledger) debitContract(contract, symbol string, quantity decimal.Decimal) (*types.Token, error) {
	token, err := l.checkQuantity(symbol, quantity)
	if err != nil {
		return nil, err
	}
	b, err := l.GetContractBalance(contract, symbol)
	if err != nil {
		return nil, err
	}
	left := amount(b.Balance).Sub(quantity)
	if left.Sign() < 0 {
		return nil, errors.Wrapf(ErrOverdrawn, "contract %s %s", contract, symbol)
	}
	b.Balance = format(left, token.Precision)
	return token, db.PutRecord(l.store, b)
}

func amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func format(d decimal.Decimal, precision int32) string {
	return d.Truncate(precision).StringFixed(precision)
}
