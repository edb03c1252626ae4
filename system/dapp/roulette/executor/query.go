// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/roulette/common/address"
	dbm "github.com/33cn/roulette/common/db"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
)

func (r *Roulette) loadOwned(params []byte) (*types.Account, error) {
	addr := string(params)
	if err := address.CheckAddress(addr); err != nil {
		return nil, types.ErrInvalidArgument
	}
	acc := r.GetAccountDB().LoadAccount(addr)
	if acc.Owner != types.RouletteProgramID {
		return nil, types.ErrNotFound
	}
	return acc, nil
}

// Query_GetHoneypot params 是奖池地址
func (r *Roulette) Query_GetHoneypot(params []byte) (interface{}, error) {
	acc, err := r.loadOwned(params)
	if err != nil {
		return nil, err
	}
	return rty.DecodeHoneypot(acc.Data)
}

// Query_GetGuessAccount params 是押注记录地址
func (r *Roulette) Query_GetGuessAccount(params []byte) (interface{}, error) {
	acc, err := r.loadOwned(params)
	if err != nil {
		return nil, err
	}
	return rty.DecodeLockedGuess(acc.Data)
}

// Query_GetRNG params 是随机数缓存地址
func (r *Roulette) Query_GetRNG(params []byte) (interface{}, error) {
	acc, err := r.loadOwned(params)
	if err != nil {
		return nil, err
	}
	return rty.DecodeRNG(acc.Data)
}

// Query_GetSpinHistory params 是玩家地址, 按步数从早到晚返回
func (r *Roulette) Query_GetSpinHistory(params []byte) (interface{}, error) {
	gambler := string(params)
	if err := address.CheckAddress(gambler); err != nil {
		return nil, types.ErrInvalidArgument
	}
	values, err := r.GetLocalDB().List(calcHistoryPrefix(gambler), 0, dbm.ListASC)
	if err == dbm.ErrNotFoundInDb {
		return []*rty.ReceiptSpin{}, nil
	}
	if err != nil {
		return nil, err
	}
	history := make([]*rty.ReceiptSpin, 0, len(values))
	for _, v := range values {
		s, err := rty.DecodeReceiptSpin(v)
		if err != nil {
			rlog.Error("GetSpinHistory", "gambler", gambler, "err", err)
			continue
		}
		history = append(history, s)
	}
	return history, nil
}
