package types

import "fmt"

type Token struct {
	Symbol         string `json:"symbol"`
	Issuer         string `json:"issuer"`
	Precision      int32  `json:"precision"`
	Supply         string `json:"supply"`
	StakingEnabled bool   `json:"stakingEnabled"`
}

func (t *Token) Key() string {
	return fmt.Sprintf("Token_%s", t.Symbol)
}

type Balance struct {
	Account        string `json:"account"`
	Symbol         string `json:"symbol"`
	Balance        string `json:"balance"`
	Stake          string `json:"stake"`
	DelegationsIn  string `json:"delegationsIn"`
	DelegationsOut string `json:"delegationsOut"`
}

func (b *Balance) Key() string {
	return fmt.Sprintf("Balance_%s|%s", b.Account, b.Symbol)
}

// ContractBalance is what a contract holds on behalf of its users.
type ContractBalance struct {
	Account string `json:"account"`
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

func (b *ContractBalance) Key() string {
	return fmt.Sprintf("ContractBalance_%s|%s", b.Account, b.Symbol)
}
