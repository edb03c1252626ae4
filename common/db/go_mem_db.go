// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sort"
	"strings"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB 内存数据库, 测试以及临时节点使用
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	mlog.Debug("NewGoMemDB", "name", name)
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

// Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.set(key, value)
	return nil
}

func (db *GoMemDB) set(key []byte, value []byte) {
	if value == nil {
		delete(db.db, string(key))
		return
	}
	db.db[string(key)] = CopyBytes(value)
}

// SetSync 与 Set 相同
func (db *GoMemDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

// Close 无操作
func (db *GoMemDB) Close() {
}

// List list
func (db *GoMemDB) List(prefix []byte, count int32, direction int32) ([][]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for k := range db.db {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if direction == ListDESC {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	if count > 0 && len(keys) > int(count) {
		keys = keys[:count]
	}
	if len(keys) == 0 {
		return nil, ErrNotFoundInDb
	}
	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		values = append(values, CopyBytes(db.db[k]))
	}
	return values, nil
}

// NewBatch new batch
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &opBatch{apply: func(ops []kvop) error {
		db.lock.Lock()
		defer db.lock.Unlock()
		for _, op := range ops {
			if op.delete {
				delete(db.db, string(op.key))
				continue
			}
			db.set(op.key, op.value)
		}
		return nil
	}}
}
