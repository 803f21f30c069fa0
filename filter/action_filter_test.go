package filter

import (
	"testing"

	"comments-contract/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexActionFilter(t *testing.T) {
	votes, err := NewRegexActionFilter(`^comments\.(vote|comment)$`, false)
	require.NoError(t, err)
	assert.True(t, votes.ShouldProcess(&types.Transaction{Contract: "comments", Action: "vote"}))
	assert.False(t, votes.ShouldProcess(&types.Transaction{Contract: "comments", Action: "setActive"}))

	noAdmin, err := NewRegexActionFilter(`\.updateParams$`, true)
	require.NoError(t, err)
	assert.False(t, noAdmin.ShouldProcess(&types.Transaction{Contract: "comments", Action: "updateParams"}))
	assert.True(t, noAdmin.ShouldProcess(&types.Transaction{Contract: "comments", Action: "vote"}))

	_, err = NewRegexActionFilter("(", false)
	require.Error(t, err)
}

func TestContractFilter(t *testing.T) {
	f := ContractFilter("comments")
	assert.True(t, f.ShouldProcess(&types.Transaction{Contract: "comments", Action: "vote"}))
	assert.False(t, f.ShouldProcess(&types.Transaction{Contract: "tokens", Action: "transfer"}))
	assert.False(t, f.ShouldProcess(&types.Transaction{Contract: "commentsx", Action: "vote"}))
}
