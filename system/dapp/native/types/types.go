// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types native 程序的指令定义以及构造函数
package types

import (
	"github.com/33cn/roulette/types"
)

// NativeX 程序名称
var NativeX = types.NativeX

// 指令编号
const (
	NativeActionCreateAccount = 0
	NativeActionTransfer      = 1
	NativeActionAllocate      = 2
	NativeActionAssign        = 3
)

// Action native 程序的指令
type Action interface {
	Ty() uint8
	encode(enc *types.Encoder)
}

// CreateAccount 从 from 转入 lamports, 分配 space 字节, 归 owner 所有
type CreateAccount struct {
	Lamports uint64
	Space    uint64
	Owner    string
}

// Transfer 转账
type Transfer struct {
	Lamports uint64
}

// Allocate 分配数据空间
type Allocate struct {
	Space uint64
}

// Assign 修改 owner
type Assign struct {
	Owner string
}

// Ty action type
func (a *CreateAccount) Ty() uint8 { return NativeActionCreateAccount }

// Ty action type
func (a *Transfer) Ty() uint8 { return NativeActionTransfer }

// Ty action type
func (a *Allocate) Ty() uint8 { return NativeActionAllocate }

// Ty action type
func (a *Assign) Ty() uint8 { return NativeActionAssign }

func (a *CreateAccount) encode(enc *types.Encoder) {
	enc.U64(a.Lamports)
	enc.U64(a.Space)
	enc.Address(a.Owner)
}

func (a *Transfer) encode(enc *types.Encoder) {
	enc.U64(a.Lamports)
}

func (a *Allocate) encode(enc *types.Encoder) {
	enc.U64(a.Space)
}

func (a *Assign) encode(enc *types.Encoder) {
	enc.Address(a.Owner)
}

// EncodeAction u8 编号加定长参数
func EncodeAction(a Action) ([]byte, error) {
	enc := types.NewEncoder(64)
	enc.U8(a.Ty())
	a.encode(enc)
	if enc.Err() != nil {
		return nil, enc.Err()
	}
	return enc.Result(), nil
}

// DecodeAction 解码指令, 多余的字节视为错误
func DecodeAction(data []byte) (Action, error) {
	dec := types.NewDecoder(data)
	var a Action
	switch dec.U8() {
	case NativeActionCreateAccount:
		a = &CreateAccount{Lamports: dec.U64(), Space: dec.U64(), Owner: dec.Address()}
	case NativeActionTransfer:
		a = &Transfer{Lamports: dec.U64()}
	case NativeActionAllocate:
		a = &Allocate{Space: dec.U64()}
	case NativeActionAssign:
		a = &Assign{Owner: dec.Address()}
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
	return types.NewInstruction(types.NativeProgramID, data, metas...)
}

// NewCreateAccount accounts: [from(s,w), to(s,w)]
func NewCreateAccount(from, to string, lamports, space uint64, owner string) *types.Instruction {
	return newInstruction(&CreateAccount{Lamports: lamports, Space: space, Owner: owner},
		types.NewAccountMeta(from, true), types.NewAccountMeta(to, true))
}

// NewTransfer accounts: [from(s,w), to(w)]
func NewTransfer(from, to string, lamports uint64) *types.Instruction {
	return newInstruction(&Transfer{Lamports: lamports},
		types.NewAccountMeta(from, true), types.NewAccountMeta(to, false))
}

// NewAllocate accounts: [account(s,w)]
func NewAllocate(addr string, space uint64) *types.Instruction {
	return newInstruction(&Allocate{Space: space}, types.NewAccountMeta(addr, true))
}

// NewAssign accounts: [account(s,w)]
func NewAssign(addr string, owner string) *types.Instruction {
	return newInstruction(&Assign{Owner: owner}, types.NewAccountMeta(addr, true))
}
