package tokens

import (
	"testing"

	"comments-contract/db"
	"comments-contract/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *types.Logs) {
	l, err := db.NewMemLdb(16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	logs := &types.Logs{}
	ledger := New(l.Begin(), logs, "null")
	require.NoError(t, ledger.CreateToken("issuer", "TKN", 8))
	require.NoError(t, ledger.EnableStaking("TKN"))
	return ledger, logs
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIssueAndStake(t *testing.T) {
	ledger, _ := newTestLedger(t)
	require.NoError(t, ledger.Issue("alice", "TKN", dec("100")))
	require.NoError(t, ledger.Stake("alice", "TKN", dec("40.5")))

	b, err := ledger.GetBalance("alice", "TKN")
	require.NoError(t, err)
	require.Equal(t, "59.50000000", b.Balance)
	require.Equal(t, "40.50000000", b.Stake)

	require.ErrorIs(t, ledger.Stake("alice", "TKN", dec("60")), ErrOverdrawn)
	require.ErrorIs(t, ledger.Issue("alice", "TKN", dec("0.000000001")), ErrPrecision)

	token, err := ledger.GetToken("TKN")
	require.NoError(t, err)
	require.Equal(t, "100.00000000", token.Supply)
}

func TestEffectiveStakeWithDelegations(t *testing.T) {
	ledger, _ := newTestLedger(t)
	require.NoError(t, ledger.Issue("alice", "TKN", dec("10")))
	require.NoError(t, ledger.Stake("alice", "TKN", dec("10")))
	require.NoError(t, ledger.Delegate("alice", "bob", "TKN", dec("3")))
	require.ErrorIs(t, ledger.Delegate("alice", "bob", "TKN", dec("8")), ErrOverdrawn)

	alice, err := ledger.EffectiveStake("alice", "TKN")
	require.NoError(t, err)
	require.Equal(t, "7", alice.String())
	bob, err := ledger.EffectiveStake("bob", "TKN")
	require.NoError(t, err)
	require.Equal(t, "3", bob.String())
}

func TestContractHoldings(t *testing.T) {
	ledger, logs := newTestLedger(t)
	require.NoError(t, ledger.IssueToContract("comments", "TKN", dec("5")))
	require.NoError(t, ledger.TransferFromContract("comments", "alice", "TKN", dec("2")))
	require.NoError(t, ledger.StakeFromContract("comments", "alice", "TKN", dec("1")))
	require.Error(t, ledger.TransferFromContract("comments", "alice", "TKN", dec("2.00000001")))

	held, err := ledger.GetContractBalance("comments", "TKN")
	require.NoError(t, err)
	require.Equal(t, "2.00000000", held.Balance)

	b, err := ledger.GetBalance("alice", "TKN")
	require.NoError(t, err)
	require.Equal(t, "2.00000000", b.Balance)
	require.Equal(t, "1.00000000", b.Stake)

	require.Len(t, logs.Events, 3)
	require.Equal(t, "issueToContract", logs.Events[0].Event)
	require.Equal(t, "stakeFromContract", logs.Events[2].Event)
}

func TestBurn(t *testing.T) {
	ledger, logs := newTestLedger(t)
	require.NoError(t, ledger.Issue("alice", "TKN", dec("10")))
	require.NoError(t, ledger.Burn("alice", "TKN", dec("4")))
	require.ErrorIs(t, ledger.Burn("alice", "TKN", dec("7")), ErrOverdrawn)

	burned, err := ledger.GetBalance("null", "TKN")
	require.NoError(t, err)
	require.Equal(t, "4.00000000", burned.Balance)
	require.Equal(t, "transfer", logs.Events[len(logs.Events)-1].Event)
}
