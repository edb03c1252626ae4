// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/roulette/types"
)

// 回执日志类型
const (
	TyLogRouletteCommit   = 100
	TyLogRouletteSpin     = 101
	TyLogRouletteCancel   = 102
	TyLogRouletteWithdraw = 103
)

// ReceiptCommit 押注锁定
type ReceiptCommit struct {
	Gambler    string
	Vault      string
	Slot       uint64
	ActiveSize uint64
}

// Encode encode
func (r *ReceiptCommit) Encode() []byte {
	enc := types.NewEncoder(66)
	enc.Address(r.Gambler)
	enc.Address(r.Vault)
	enc.U64(r.Slot)
	enc.U64(r.ActiveSize)
	return enc.Result()
}

// DecodeReceiptCommit decode
func DecodeReceiptCommit(b []byte) (*ReceiptCommit, error) {
	dec := types.NewDecoder(b)
	r := &ReceiptCommit{Gambler: dec.Address(), Vault: dec.Address(), Slot: dec.U64(), ActiveSize: dec.U64()}
	if dec.Err() != nil {
		return nil, dec.Err()
	}
	return r, nil
}

// ReceiptSpin 一次开奖的结果, 也是本地保存的开奖历史
type ReceiptSpin struct {
	Gambler    string
	Vault      string
	GuessSlot  uint64
	Slot       uint64
	Outcome    uint64
	ActiveSize uint64
	Reward     uint64
}

// Encode encode
func (r *ReceiptSpin) Encode() []byte {
	enc := types.NewEncoder(90)
	enc.Address(r.Gambler)
	enc.Address(r.Vault)
	enc.U64(r.GuessSlot)
	enc.U64(r.Slot)
	enc.U64(r.Outcome)
	enc.U64(r.ActiveSize)
	enc.U64(r.Reward)
	return enc.Result()
}

// DecodeReceiptSpin decode
func DecodeReceiptSpin(b []byte) (*ReceiptSpin, error) {
	dec := types.NewDecoder(b)
	r := &ReceiptSpin{
		Gambler:    dec.Address(),
		Vault:      dec.Address(),
		GuessSlot:  dec.U64(),
		Slot:       dec.U64(),
		Outcome:    dec.U64(),
		ActiveSize: dec.U64(),
		Reward:     dec.U64(),
	}
	if dec.Err() != nil {
		return nil, dec.Err()
	}
	return r, nil
}

// ReceiptTransfer 退款和提取, 记录从 vault 转出的数量
type ReceiptTransfer struct {
	To     string
	Vault  string
	Amount uint64
}

// Encode encode
func (r *ReceiptTransfer) Encode() []byte {
	enc := types.NewEncoder(58)
	enc.Address(r.To)
	enc.Address(r.Vault)
	enc.U64(r.Amount)
	return enc.Result()
}

// DecodeReceiptTransfer decode
func DecodeReceiptTransfer(b []byte) (*ReceiptTransfer, error) {
	dec := types.NewDecoder(b)
	r := &ReceiptTransfer{To: dec.Address(), Vault: dec.Address(), Amount: dec.U64()}
	if dec.Err() != nil {
		return nil, dec.Err()
	}
	return r, nil
}
