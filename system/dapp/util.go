// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"fmt"

	"github.com/33cn/roulette/types"
)

// AccountIter 按顺序取指令的账户
type AccountIter struct {
	accounts []*types.AccountInfo
	pos      int
}

// NewAccountIter new
func NewAccountIter(accounts []*types.AccountInfo) *AccountIter {
	return &AccountIter{accounts: accounts}
}

// Next 下一个账户, 不足时返回 ErrNotEnoughAccountKeys
func (it *AccountIter) Next() (*types.AccountInfo, error) {
	if it.pos >= len(it.accounts) {
		return nil, types.ErrNotEnoughAccountKeys
	}
	ai := it.accounts[it.pos]
	it.pos++
	return ai, nil
}

// Rest 剩余的账户
func (it *AccountIter) Rest() []*types.AccountInfo {
	if it.pos >= len(it.accounts) {
		return nil
	}
	return it.accounts[it.pos:]
}

// HeightIndexStr 本地索引 key 中使用的定长 height+index
func HeightIndexStr(height, index int64) string {
	return fmt.Sprintf("%012d%05d", height, index)
}

// RentFrom 从 rent sysvar 账户读取租金参数
func RentFrom(ai *types.AccountInfo) (*types.Rent, error) {
	if ai.Addr != types.SysvarRentID {
		return nil, types.ErrInvalidArgument
	}
	return types.DecodeRent(ai.Data)
}

// ClockFrom 从 clock sysvar 账户读取当前步数
func ClockFrom(ai *types.AccountInfo) (*types.Clock, error) {
	if ai.Addr != types.SysvarClockID {
		return nil, types.ErrInvalidArgument
	}
	return types.DecodeClock(ai.Data)
}
