// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"math"

	"github.com/33cn/roulette/types"
)

func safeAdd(balance, amount uint64) (uint64, error) {
	if amount > math.MaxUint64-balance {
		return balance, types.ErrNumericalOverflow
	}
	return balance + amount, nil
}

// GenesisInit 直接给地址增加 lamports, 只在创世和本地测试节点的空投中使用
func (acc *DB) GenesisInit(addr string, amount uint64) (receipt *types.Receipt, err error) {
	accTo := acc.LoadAccount(addr)
	accTo.Lamports, err = safeAdd(accTo.Lamports, amount)
	if err != nil {
		return nil, err
	}
	acc.SaveAccount(accTo)
	receipt = &types.Receipt{Ty: types.ExecOk, KV: acc.GetKVSet(accTo)}
	return receipt, nil
}
