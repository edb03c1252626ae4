// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/roulette/types"
)

// 指令编号
const (
	TokenActionInitializeMint              = 0
	TokenActionInitializeAccount           = 1
	TokenActionInitializeAssociatedAccount = 2
	TokenActionMintTo                      = 3
	TokenActionTransfer                    = 4
)

// Action token 程序的指令
type Action interface {
	Ty() uint8
	encode(enc *types.Encoder)
}

// InitializeMint accounts: [mint(w), rent]
type InitializeMint struct {
	Decimals      uint8
	MintAuthority string
}

// InitializeAccount accounts: [account(w), mint, owner, rent]
type InitializeAccount struct{}

// InitializeAssociatedAccount accounts: [payer(s,w), account(w), owner, mint, native, rent]
type InitializeAssociatedAccount struct{}

// MintTo accounts: [mint(w), account(w), authority(s)]
type MintTo struct {
	Amount uint64
}

// Transfer accounts: [source(w), destination(w), authority(s)]
type Transfer struct {
	Amount uint64
}

// Ty action type
func (a *InitializeMint) Ty() uint8 { return TokenActionInitializeMint }

// Ty action type
func (a *InitializeAccount) Ty() uint8 { return TokenActionInitializeAccount }

// Ty action type
func (a *InitializeAssociatedAccount) Ty() uint8 { return TokenActionInitializeAssociatedAccount }

// Ty action type
func (a *MintTo) Ty() uint8 { return TokenActionMintTo }

// Ty action type
func (a *Transfer) Ty() uint8 { return TokenActionTransfer }

func (a *InitializeMint) encode(enc *types.Encoder) {
	enc.U8(a.Decimals)
	enc.Address(a.MintAuthority)
}

func (a *InitializeAccount) encode(enc *types.Encoder) {}

func (a *InitializeAssociatedAccount) encode(enc *types.Encoder) {}

func (a *MintTo) encode(enc *types.Encoder) {
	enc.U64(a.Amount)
}

func (a *Transfer) encode(enc *types.Encoder) {
	enc.U64(a.Amount)
}

// EncodeAction u8 编号加定长参数
func EncodeAction(a Action) ([]byte, error) {
	enc := types.NewEncoder(32)
	enc.U8(a.Ty())
	a.encode(enc)
	if enc.Err() != nil {
		return nil, enc.Err()
	}
	return enc.Result(), nil
}

// DecodeAction 解码指令
func DecodeAction(data []byte) (Action, error) {
	dec := types.NewDecoder(data)
	var a Action
	switch dec.U8() {
	case TokenActionInitializeMint:
		a = &InitializeMint{Decimals: dec.U8(), MintAuthority: dec.Address()}
	case TokenActionInitializeAccount:
		a = &InitializeAccount{}
	case TokenActionInitializeAssociatedAccount:
		a = &InitializeAssociatedAccount{}
	case TokenActionMintTo:
		a = &MintTo{Amount: dec.U64()}
	case TokenActionTransfer:
		a = &Transfer{Amount: dec.U64()}
	default:
		return nil, types.ErrInvalidInstructionData
	}
	if dec.Err() != nil || dec.Remaining() != 0 {
		return nil, types.ErrInvalidInstructionData
	}
	return a, nil
}

func newInstruction(a Action, metas ...types.AccountMeta) *types.Instruction {
	data, err := EncodeAction(a)
	if err != nil {
		panic(err)
	}
	return types.NewInstruction(types.TokenProgramID, data, metas...)
}

// NewInitializeMint mint 账户需要事先由 native 程序创建并归 token 程序所有
func NewInitializeMint(mint, authority string, decimals uint8) *types.Instruction {
	return newInstruction(&InitializeMint{Decimals: decimals, MintAuthority: authority},
		types.NewAccountMeta(mint, false),
		types.NewReadonlyAccountMeta(types.SysvarRentID, false))
}

// NewInitializeAccount 初始化持有账户
func NewInitializeAccount(account, mint, owner string) *types.Instruction {
	return newInstruction(&InitializeAccount{},
		types.NewAccountMeta(account, false),
		types.NewReadonlyAccountMeta(mint, false),
		types.NewReadonlyAccountMeta(owner, false),
		types.NewReadonlyAccountMeta(types.SysvarRentID, false))
}

// NewInitializeAssociatedAccount 在 (owner, mint) 的关联地址创建持有账户, payer 支付租金
func NewInitializeAssociatedAccount(payer, owner, mint string) *types.Instruction {
	return newInstruction(&InitializeAssociatedAccount{},
		types.NewAccountMeta(payer, true),
		types.NewAccountMeta(AssociatedAddress(owner, mint), false),
		types.NewReadonlyAccountMeta(owner, false),
		types.NewReadonlyAccountMeta(mint, false),
		types.NewReadonlyAccountMeta(types.NativeProgramID, false),
		types.NewReadonlyAccountMeta(types.SysvarRentID, false))
}

// NewMintTo 增发
func NewMintTo(mint, account, authority string, amount uint64) *types.Instruction {
	return newInstruction(&MintTo{Amount: amount},
		types.NewAccountMeta(mint, false),
		types.NewAccountMeta(account, false),
		types.NewReadonlyAccountMeta(authority, true))
}

// NewTransfer 转账, authority 是 source 的 owner
func NewTransfer(source, destination, authority string, amount uint64) *types.Instruction {
	return newInstruction(&Transfer{Amount: amount},
		types.NewAccountMeta(source, false),
		types.NewAccountMeta(destination, false),
		types.NewReadonlyAccountMeta(authority, true))
}
