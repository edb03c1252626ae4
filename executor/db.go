// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/roulette/common/db"
	"github.com/33cn/roulette/types"
)

// StateDB 交易执行期间的状态数据库.
// 写入先进入 txcache, Commit 之后进入 cache, Flush 时一次写入后端.
// value 为 nil 表示删除.
type StateDB struct {
	db      dbm.KVDB
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	dirty   map[string]bool
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.KVDB) *StateDB {
	return &StateDB{
		db:    db,
		cache: make(map[string][]byte),
		dirty: make(map[string]bool),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 事务内的修改合并到 cache
func (s *StateDB) Commit() {
	for k, v := range s.txcache {
		s.cache[k] = v
		s.dirty[k] = true
	}
	s.resetTx()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	if value, ok := s.cache[skey]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	//get 的值可以写入cache，因为没有对系统的值做修改
	s.cache[skey] = value
	return value, nil
}

// Set set key value to state db
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
		return nil
	}
	s.cache[skey] = value
	s.dirty[skey] = true
	return nil
}

// GetSetKeys 当前事务中写入过的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// Flush 已提交的修改写入 batch, 返回写入的 kv (按 key 排序)
func (s *StateDB) Flush(batch dbm.Batch) []*types.KeyValue {
	keys := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, 0, len(keys))
	for _, k := range keys {
		value := s.cache[k]
		if value == nil {
			batch.Delete([]byte(k))
		} else {
			batch.Set([]byte(k), value)
		}
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: value})
	}
	s.dirty = make(map[string]bool)
	return kvs
}
