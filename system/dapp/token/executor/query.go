// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

func (t *Token) loadInfo(params []byte) (*types.AccountInfo, error) {
	addr := string(params)
	if err := address.CheckAddress(addr); err != nil {
		return nil, types.ErrInvalidArgument
	}
	acc := t.GetAccountDB().LoadAccount(addr)
	return &types.AccountInfo{Account: acc}, nil
}

// Query_GetMint params 是 mint 地址
func (t *Token) Query_GetMint(params []byte) (interface{}, error) {
	ai, err := t.loadInfo(params)
	if err != nil {
		return nil, err
	}
	return LoadMint(ai)
}

// Query_GetAccount params 是持有账户地址
func (t *Token) Query_GetAccount(params []byte) (interface{}, error) {
	ai, err := t.loadInfo(params)
	if err != nil {
		return nil, err
	}
	return LoadAccount(ai)
}
