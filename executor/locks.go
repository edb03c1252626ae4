// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"hash/fnv"
	"sort"
	"sync"

	"github.com/33cn/roulette/types"
)

const lockStripes = 256

// lockTable 按地址分段的读写锁. 交易执行前锁住它引用的所有账户:
// 可写账户加写锁, 其余加读锁. 加锁按段号排序, 不会死锁.
type lockTable struct {
	stripes [lockStripes]sync.RWMutex
}

type lockReq struct {
	stripe int
	write  bool
}

func stripeOf(addr string) int {
	h := fnv.New32a()
	h.Write([]byte(addr))
	return int(h.Sum32() % lockStripes)
}

// lockSet 交易需要的锁, 同一段既有读又有写时加写锁
func lockSet(tx *types.Transaction) []lockReq {
	m := make(map[int]bool)
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			s := stripeOf(meta.Addr)
			m[s] = m[s] || meta.IsWritable
		}
	}
	return sortedReqs(m)
}

func sortedReqs(m map[int]bool) []lockReq {
	reqs := make([]lockReq, 0, len(m))
	for s, w := range m {
		reqs = append(reqs, lockReq{stripe: s, write: w})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].stripe < reqs[j].stripe })
	return reqs
}

// lock 返回解锁函数
func (t *lockTable) lock(reqs []lockReq) func() {
	for _, r := range reqs {
		if r.write {
			t.stripes[r.stripe].Lock()
		} else {
			t.stripes[r.stripe].RLock()
		}
	}
	return func() {
		for i := len(reqs) - 1; i >= 0; i-- {
			r := reqs[i]
			if r.write {
				t.stripes[r.stripe].Unlock()
			} else {
				t.stripes[r.stripe].RUnlock()
			}
		}
	}
}

// lockAddrs 锁住单个操作用到的地址
func (t *lockTable) lockAddrs(write bool, addrs ...string) func() {
	m := make(map[int]bool)
	for _, addr := range addrs {
		m[stripeOf(addr)] = write
	}
	return t.lock(sortedReqs(m))
}
