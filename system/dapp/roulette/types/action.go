// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/roulette/types"
)

// RouletteX 程序名称
var RouletteX = types.RouletteX

// 指令编号, 顺序是兼容性约定的一部分
const (
	RouletteActionInitialize = iota
	RouletteActionSample
	RouletteActionInitializeHoneypot
	RouletteActionWithdrawFromHoneypot
	RouletteActionInitializeGuessAccount
	RouletteActionPlaceGuesses
	RouletteActionSpin
	RouletteActionTryCancel
)

// MaxGuessesPerTx 一次最多押注的条数
const MaxGuessesPerTx = 256

// Action 轮盘指令, 封闭的集合, 每种指令一个结构
type Action interface {
	Ty() uint8
	encode(enc *types.Encoder)
}

// Initialize 创建请求方的随机数缓存
type Initialize struct{}

// Sample 从 oracle 读取随机数写入缓存
type Sample struct {
	Tolerance uint64
}

// InitializeHoneypot 创建奖池和 vault
type InitializeHoneypot struct {
	TickSize        uint64
	MaxAmount       uint64
	MinimumBankSize uint64
}

// WithdrawFromHoneypot 奖池 owner 提取资金
type WithdrawFromHoneypot struct {
	Amount uint64
}

// InitializeGuessAccount 创建玩家的押注记录
type InitializeGuessAccount struct{}

// PlaceGuesses 锁定押注
type PlaceGuesses struct {
	Guesses []RouletteGuess
}

// Spin 开奖
type Spin struct {
	Tolerance uint64
}

// TryCancel 取消锁定的押注并退款
type TryCancel struct{}

// Ty action type
func (a *Initialize) Ty() uint8 { return RouletteActionInitialize }

// Ty action type
func (a *Sample) Ty() uint8 { return RouletteActionSample }

// Ty action type
func (a *InitializeHoneypot) Ty() uint8 { return RouletteActionInitializeHoneypot }

// Ty action type
func (a *WithdrawFromHoneypot) Ty() uint8 { return RouletteActionWithdrawFromHoneypot }

// Ty action type
func (a *InitializeGuessAccount) Ty() uint8 { return RouletteActionInitializeGuessAccount }

// Ty action type
func (a *PlaceGuesses) Ty() uint8 { return RouletteActionPlaceGuesses }

// Ty action type
func (a *Spin) Ty() uint8 { return RouletteActionSpin }

// Ty action type
func (a *TryCancel) Ty() uint8 { return RouletteActionTryCancel }

func (a *Initialize) encode(enc *types.Encoder) {}

func (a *Sample) encode(enc *types.Encoder) {
	enc.U64(a.Tolerance)
}

func (a *InitializeHoneypot) encode(enc *types.Encoder) {
	enc.U64(a.TickSize)
	enc.U64(a.MaxAmount)
	enc.U64(a.MinimumBankSize)
}

func (a *WithdrawFromHoneypot) encode(enc *types.Encoder) {
	enc.U64(a.Amount)
}

func (a *InitializeGuessAccount) encode(enc *types.Encoder) {}

// u32 条数, 每条 u8 类型加 u64 数量
func (a *PlaceGuesses) encode(enc *types.Encoder) {
	enc.U32(uint32(len(a.Guesses)))
	for _, g := range a.Guesses {
		enc.U8(uint8(g.Guess))
		enc.U64(g.Amount)
	}
}

func (a *Spin) encode(enc *types.Encoder) {
	enc.U64(a.Tolerance)
}

func (a *TryCancel) encode(enc *types.Encoder) {}

// EncodeAction u8 编号加定长参数
func EncodeAction(a Action) []byte {
	enc := types.NewEncoder(32)
	enc.U8(a.Ty())
	a.encode(enc)
	return enc.Result()
}

func decodeGuesses(dec *types.Decoder) ([]RouletteGuess, error) {
	n := dec.U32()
	if dec.Err() != nil {
		return nil, types.ErrInvalidInstructionData
	}
	if n > MaxGuessesPerTx || int(n)*9 > dec.Remaining() {
		return nil, types.ErrInvalidInstructionData
	}
	guesses := make([]RouletteGuess, n)
	for i := range guesses {
		g := Guess(dec.U8())
		if int(g) >= NumGuesses {
			return nil, types.ErrInvalidInstructionData
		}
		guesses[i] = RouletteGuess{Guess: g, Amount: dec.U64()}
	}
	return guesses, nil
}

// DecodeAction 解码指令, 多余的字节视为错误
func DecodeAction(data []byte) (Action, error) {
	dec := types.NewDecoder(data)
	var a Action
	switch dec.U8() {
	case RouletteActionInitialize:
		a = &Initialize{}
	case RouletteActionSample:
		a = &Sample{Tolerance: dec.U64()}
	case RouletteActionInitializeHoneypot:
		a = &InitializeHoneypot{TickSize: dec.U64(), MaxAmount: dec.U64(), MinimumBankSize: dec.U64()}
	case RouletteActionWithdrawFromHoneypot:
		a = &WithdrawFromHoneypot{Amount: dec.U64()}
	case RouletteActionInitializeGuessAccount:
		a = &InitializeGuessAccount{}
	case RouletteActionPlaceGuesses:
		guesses, err := decodeGuesses(dec)
		if err != nil {
			return nil, err
		}
		a = &PlaceGuesses{Guesses: guesses}
	case RouletteActionSpin:
		a = &Spin{Tolerance: dec.U64()}
	case RouletteActionTryCancel:
		a = &TryCancel{}
	default:
		return nil, types.ErrInvalidInstructionData
	}
	if dec.Err() != nil || dec.Remaining() != 0 {
		return nil, types.ErrInvalidInstructionData
	}
	return a, nil
}
