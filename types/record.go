package types

import (
	"fmt"
	"time"
)

type DbRecord interface {
	Key() string
}

type DbRecordAutoId interface {
	DbRecord
	Prefix() string
	SetId(uint64)
}

// IdKey renders ids so that lexical key order matches numeric order.
func IdKey(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

type RewardPoolHistory struct {
	ID            uint64
	RewardPoolId  uint64
	Symbol        string
	Balance       string
	PendingClaims string
	Time          time.Time
}

func (h *RewardPoolHistory) Key() string {
	return fmt.Sprintf("RewardPoolHistory_%s_%s", IdKey(h.RewardPoolId), IdKey(h.ID))
}

func (h *RewardPoolHistory) Prefix() string {
	return fmt.Sprintf("RewardPoolHistory_%s_", IdKey(h.RewardPoolId))
}

func (h *RewardPoolHistory) SetId(id uint64) {
	h.ID = id
}
