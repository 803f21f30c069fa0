package types

import (
	"encoding/json"
	"fmt"
)

type Event struct {
	Contract string      `json:"contract"`
	Event    string      `json:"event"`
	Data     interface{} `json:"data"`
}

// Logs collects what a single transaction emitted. It marshals to "{}" when empty.
type Logs struct {
	Events []Event  `json:"events,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func (l *Logs) Emit(contract, event string, data interface{}) {
	l.Events = append(l.Events, Event{Contract: contract, Event: event, Data: data})
}

func (l *Logs) Fail(msg string) {
	l.Errors = append(l.Errors, msg)
}

func (l *Logs) Empty() bool {
	return len(l.Events) == 0 && len(l.Errors) == 0
}

// Mark returns a restore point for Truncate.
func (l *Logs) Mark() (int, int) {
	return len(l.Events), len(l.Errors)
}

func (l *Logs) Truncate(events, errs int) {
	l.Events = l.Events[:events]
	l.Errors = l.Errors[:errs]
}

func (l *Logs) String() string {
	data, err := json.Marshal(l)
	if err != nil {
		return "{}"
	}
	return string(data)
}

type TxResult struct {
	ID             uint64
	BlockNumber    int64
	RefBlockNumber int64
	TransactionId  string
	Sender         string
	Contract       string
	Action         string
	Logs           string
}

func (r *TxResult) Key() string {
	return fmt.Sprintf("TxResult_%s", IdKey(r.ID))
}

func (r *TxResult) Prefix() string {
	return "TxResult_"
}

func (r *TxResult) SetId(id uint64) {
	r.ID = id
}
