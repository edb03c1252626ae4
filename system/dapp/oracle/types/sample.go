// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/roulette/common"
	drivers "github.com/33cn/roulette/system/dapp"
	"github.com/33cn/roulette/types"
)

// Sample 从 [clock, feed...] 读取随机数, 返回随机数和当前步数.
// 每个 feed 最近一次更新距离当前步数不能超过 tolerance, maxFeeds <= 0 表示不限制 feed 个数.
func Sample(accounts []*types.AccountInfo, tolerance uint64, maxFeeds int) (value uint64, step uint64, err error) {
	if len(accounts) == 0 {
		return 0, 0, types.ErrNotEnoughAccountKeys
	}
	clock, err := drivers.ClockFrom(accounts[0])
	if err != nil {
		return 0, 0, err
	}
	feeds := accounts[1:]
	if len(feeds) == 0 {
		return 0, 0, ErrNoEntropy
	}
	if maxFeeds > 0 && len(feeds) > maxFeeds {
		return 0, 0, ErrTooManyFeeds
	}
	step = clock.Slot
	buf := make([]byte, 8, 8+16*len(feeds))
	binary.LittleEndian.PutUint64(buf, step)
	slots := make([]byte, 0, 8*len(feeds))
	for _, ai := range feeds {
		feed, err := LoadFeed(ai)
		if err != nil {
			return 0, 0, err
		}
		if feed.Slot < step && step-feed.Slot > tolerance {
			return 0, 0, ErrStaleEntropy
		}
		buf = binary.LittleEndian.AppendUint64(buf, feed.Value)
		slots = binary.LittleEndian.AppendUint64(slots, feed.Slot)
	}
	hash := common.Sha256(append(buf, slots...))
	return binary.LittleEndian.Uint64(hash[:8]), step, nil
}

// LoadFeed 读取已经初始化的 feed
func LoadFeed(ai *types.AccountInfo) (*Feed, error) {
	if ai.Owner != types.OracleProgramID {
		return nil, types.ErrIncorrectOwner
	}
	feed, err := DecodeFeed(ai.Data)
	if err != nil {
		return nil, err
	}
	if !feed.IsInitialized {
		return nil, types.ErrUninitializedAccount
	}
	return feed, nil
}

