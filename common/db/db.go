// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 键值数据库接口以及 memdb / goleveldb / gobadgerdb 后端
package db

import (
	"errors"
	"fmt"
)

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// 列表方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// KVDB 只包含读写的最小接口
type KVDB interface {
	Get(key []byte) (value []byte, err error)
	Set(key []byte, value []byte) (err error)
}

// KVDBList 支持按前缀列表的 KVDB, 本地索引使用
type KVDBList interface {
	KVDB
	// List 按 key 顺序返回 prefix 下最多 count 个 value, count <= 0 表示全部
	List(prefix []byte, count int32, direction int32) ([][]byte, error)
}

// KV 带内存事务的状态数据库
type KV interface {
	KVDB
	Begin()
	Rollback()
	Commit()
}

// DB 后端数据库
type DB interface {
	KVDBList
	SetSync([]byte, []byte) error
	Delete([]byte) error
	Close()
	NewBatch(sync bool) Batch
}

// Batch 批量写
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//-----------------------------------------------------------------------------

// 后端名称
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按后端名称创建数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return creator(name, dir, cache)
}

// CopyBytes 复制一份, nil 保持 nil
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}

type kvop struct {
	key    []byte
	value  []byte
	delete bool
}

// opBatch 缓存写操作, Write 时交给 apply 一次写入
type opBatch struct {
	ops   []kvop
	size  int
	apply func(ops []kvop) error
}

func (b *opBatch) Set(key, value []byte) {
	b.ops = append(b.ops, kvop{key: CopyBytes(key), value: CopyBytes(value)})
	b.size += len(value)
}

func (b *opBatch) Delete(key []byte) {
	b.ops = append(b.ops, kvop{key: CopyBytes(key), delete: true})
	b.size++
}

func (b *opBatch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	return b.apply(b.ops)
}

func (b *opBatch) ValueSize() int {
	return b.size
}

func (b *opBatch) Reset() {
	b.ops = nil
	b.size = 0
}
