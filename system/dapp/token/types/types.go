// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types token 程序的记录, 指令以及构造函数
package types

import (
	"errors"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// TokenX 程序名称
var TokenX = types.TokenX

// token 程序自己的错误
var (
	ErrTokenMintMismatch  = errors.New("ErrTokenMintMismatch")
	ErrTokenOwnerMismatch = errors.New("ErrTokenOwnerMismatch")
)

// 记录长度
const (
	MintLen    = 1 + 1 + 8 + address.Size
	AccountLen = address.Size + address.Size + 8 + 1
)

// 账户状态
const (
	AccountUninitialized = 0
	AccountInitialized   = 1
)

// Mint 资产定义
type Mint struct {
	IsInitialized bool
	Decimals      uint8
	Supply        uint64
	MintAuthority string
}

// Encode 定长编码
func (m *Mint) Encode() []byte {
	enc := types.NewEncoder(MintLen)
	enc.Bool(m.IsInitialized)
	enc.U8(m.Decimals)
	enc.U64(m.Supply)
	enc.Address(m.MintAuthority)
	return enc.Result()
}

// DecodeMint 数据长度必须是 MintLen
func DecodeMint(b []byte) (*Mint, error) {
	if len(b) != MintLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	m := &Mint{
		IsInitialized: dec.Bool(),
		Decimals:      dec.U8(),
		Supply:        dec.U64(),
		MintAuthority: dec.Address(),
	}
	if dec.Err() != nil {
		return nil, types.ErrInvalidAccountData
	}
	return m, nil
}

// Account 持有某种资产的账户
type Account struct {
	Mint   string
	Owner  string
	Amount uint64
	State  uint8
}

// IsInitialized 是否已经初始化
func (a *Account) IsInitialized() bool {
	return a.State != AccountUninitialized
}

// Encode 定长编码
func (a *Account) Encode() []byte {
	enc := types.NewEncoder(AccountLen)
	enc.Address(a.Mint)
	enc.Address(a.Owner)
	enc.U64(a.Amount)
	enc.U8(a.State)
	return enc.Result()
}

// DecodeAccount 数据长度必须是 AccountLen
func DecodeAccount(b []byte) (*Account, error) {
	if len(b) != AccountLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	a := &Account{
		Mint:   dec.Address(),
		Owner:  dec.Address(),
		Amount: dec.U64(),
		State:  dec.U8(),
	}
	if dec.Err() != nil || a.State > AccountInitialized {
		return nil, types.ErrInvalidAccountData
	}
	return a, nil
}

// AssociatedSeeds 关联账户的种子, 不包含 bump
func AssociatedSeeds(owner, mint string) ([][]byte, error) {
	ownerBytes, err := address.ToBytes(owner)
	if err != nil {
		return nil, err
	}
	mintBytes, err := address.ToBytes(mint)
	if err != nil {
		return nil, err
	}
	return [][]byte{ownerBytes, address.MustBytes(types.TokenProgramID), mintBytes}, nil
}

// FindAssociatedAddress owner 持有 mint 的关联账户地址以及 bump
func FindAssociatedAddress(owner, mint string) (string, uint8, error) {
	seeds, err := AssociatedSeeds(owner, mint)
	if err != nil {
		return "", 0, err
	}
	return address.FindProgramAddress(seeds, types.TokenProgramID)
}

// AssociatedAddress 地址无效时返回空字符串
func AssociatedAddress(owner, mint string) string {
	addr, _, err := FindAssociatedAddress(owner, mint)
	if err != nil {
		return ""
	}
	return addr
}
