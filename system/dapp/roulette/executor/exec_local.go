// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/roulette/common"
	"github.com/33cn/roulette/metrics"
	drivers "github.com/33cn/roulette/system/dapp"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
)

const historyPrefix = "LODB-roulette-history-"

// calcHistoryPrefix 某个玩家的开奖历史
func calcHistoryPrefix(gambler string) []byte {
	return []byte(historyPrefix + gambler + "-")
}

func calcHistoryKey(gambler string, height int64, index int, seq int, txhash []byte) []byte {
	return []byte(fmt.Sprintf("%s%s-%s%03d-%s", historyPrefix, gambler,
		drivers.HeightIndexStr(height, int64(index)), seq, common.ToHex(txhash[:8])))
}

// ExecLocal 保存开奖历史并更新统计
func (r *Roulette) ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.Ty != types.ExecOk {
		return set, nil
	}
	txhash := tx.Hash()
	for i, l := range receipt.Logs {
		switch l.Ty {
		case rty.TyLogRouletteCommit:
			c, err := rty.DecodeReceiptCommit(l.Log)
			if err != nil {
				return nil, err
			}
			metrics.Inc(metrics.RouletteWagered, int64(c.ActiveSize))
		case rty.TyLogRouletteSpin:
			s, err := rty.DecodeReceiptSpin(l.Log)
			if err != nil {
				return nil, err
			}
			key := calcHistoryKey(s.Gambler, r.GetHeight(), index, i, txhash)
			set.KV = append(set.KV, &types.KeyValue{Key: key, Value: l.Log})
			metrics.Inc(metrics.RouletteSpins, 1)
			metrics.Inc(metrics.RoulettePaid, int64(s.Reward))
		case rty.TyLogRouletteCancel:
			c, err := rty.DecodeReceiptTransfer(l.Log)
			if err != nil {
				return nil, err
			}
			metrics.Inc(metrics.RouletteRefunded, int64(c.Amount))
		}
	}
	return set, nil
}
