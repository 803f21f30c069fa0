package contract

import (
	"time"

	"comments-contract/db"
	"comments-contract/logger"
	"comments-contract/tokens"
	"comments-contract/types"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TokenLedger is the slice of the token contract the reward engine relies on.
type TokenLedger interface {
	GetToken(symbol string) (*types.Token, error)
	GetBalance(account, symbol string) (*types.Balance, error)
	EffectiveStake(account, symbol string) (decimal.Decimal, error)
	IssueToContract(contract, symbol string, quantity decimal.Decimal) error
	TransferFromContract(contract, to, symbol string, quantity decimal.Decimal) error
	StakeFromContract(contract, to, symbol string, quantity decimal.Decimal) error
	Burn(from, symbol string, quantity decimal.Decimal) error
}

type LedgerFactory func(store db.Store, logs *types.Logs) TokenLedger

type Settings struct {
	Name         string
	Owner        string
	RelayAccount string
	FeeSymbol    string
	BurnAccount  string
}

// Context carries one transaction through an action handler and the
// maintenance pass that follows it.
type Context struct {
	Store          db.Store
	Tokens         TokenLedger
	Logs           *types.Logs
	Sender         string
	Signed         bool
	RefBlockNumber int64
	Timestamp      int64
	Payload        []byte

	params *types.Params
}

type Handler func(c *Contract, ctx *Context) error

type Contract struct {
	settings Settings
	ledger   LedgerFactory
	handlers map[string]Handler
}

func New(settings Settings, ledger LedgerFactory) *Contract {
	if ledger == nil {
		ledger = func(store db.Store, logs *types.Logs) TokenLedger {
			return tokens.New(store, logs, settings.BurnAccount)
		}
	}
	c := &Contract{
		settings: settings,
		ledger:   ledger,
		handlers: make(map[string]Handler),
	}
	c.RegisterHandler("updateParams", (*Contract).updateParams)
	c.RegisterHandler("createRewardPool", (*Contract).createRewardPool)
	c.RegisterHandler("updateRewardPool", (*Contract).updateRewardPool)
	c.RegisterHandler("setActive", (*Contract).setActive)
	c.RegisterHandler("comment", (*Contract).comment)
	c.RegisterHandler("commentOptions", (*Contract).commentOptions)
	c.RegisterHandler("vote", (*Contract).vote)
	return c
}

func (c *Contract) RegisterHandler(action string, h Handler) {
	c.handlers[action] = h
}

func (c *Contract) Name() string {
	return c.settings.Name
}

// Install writes the default params when the store has none yet.
func (c *Contract) Install(store db.Store) error {
	params := &types.Params{}
	found, err := db.GetRecord(store, params)
	if err != nil || found {
		return err
	}
	return db.PutRecord(store, DefaultParams())
}

// Execute applies tx at timestamp and then runs the maintenance pass. A
// rejected action leaves no state behind and records its message in the
// logs; any other failure is returned and must stop the replay.
func (c *Contract) Execute(store *db.Tx, tx *types.Transaction, timestamp time.Time) (*types.Logs, error) {
	logs := &types.Logs{}
	ctx := &Context{
		Store:          store,
		Tokens:         c.ledger(store, logs),
		Logs:           logs,
		Sender:         tx.Sender,
		Signed:         tx.IsSignedWithActiveKey,
		RefBlockNumber: tx.RefBlockNumber,
		Timestamp:      timestamp.UnixMilli(),
		Payload:        tx.Payload,
	}

	snapshot := store.Snapshot()
	events, errs := logs.Mark()
	if err := c.dispatch(ctx, tx.Action); err != nil {
		var rejected *Error
		if !errors.As(err, &rejected) {
			return nil, errors.Wrapf(err, "%s.%s", c.settings.Name, tx.Action)
		}
		store.Restore(snapshot)
		logs.Truncate(events, errs)
		logs.Fail(rejected.Message)
		ctx.params = nil
		logger.Logger.Debugf("tx %s %s rejected (%s): %s", tx.TransactionId, tx.Action, rejected.Kind, rejected.Message)
	}

	if err := c.Maintain(ctx); err != nil {
		return nil, errors.Wrap(err, "maintenance")
	}
	return logs, nil
}

func (c *Contract) dispatch(ctx *Context, action string) error {
	h, ok := c.handlers[action]
	if !ok {
		return validationf("invalid action")
	}
	return h(c, ctx)
}

func (c *Contract) isRelay(ctx *Context) bool {
	return ctx.Sender == c.settings.RelayAccount
}
