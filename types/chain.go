package types

import (
	"encoding/json"
	"fmt"
	"time"
)

type Chain struct {
	Name          string
	Height        int64
	LastTimestamp int64
}

func (c *Chain) Key() string {
	return fmt.Sprintf("Chain_%s", c.Name)
}

func (c *Chain) Clone() *Chain {
	return &Chain{
		Name:          c.Name,
		Height:        c.Height,
		LastTimestamp: c.LastTimestamp,
	}
}

// Transaction is one ordered entry of the replay log.
type Transaction struct {
	RefBlockNumber        int64           `json:"refHiveBlockNumber"`
	TransactionId         string          `json:"transactionId"`
	Sender                string          `json:"sender"`
	Contract              string          `json:"contract"`
	Action                string          `json:"action"`
	Payload               json.RawMessage `json:"payload"`
	IsSignedWithActiveKey bool            `json:"isSignedWithActiveKey"`
}

type Block struct {
	BlockNumber  int64          `json:"blockNumber"`
	Timestamp    time.Time      `json:"timestamp"`
	Transactions []*Transaction `json:"transactions"`
}
