// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 账本账户的读写

	1. load from db
	2. save to db
	3. KVSet
*/
package account

import (
	dbm "github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/types"
)

var alog = log.New("module", "account")

// KeyPrefix 账户在状态数据库中的前缀
const KeyPrefix = "mavl-ledger-"

// DB for account
type DB struct {
	db               dbm.KVDB
	accountKeyPerfix []byte
}

// NewAccountDB new
func NewAccountDB(db dbm.KVDB) *DB {
	return &DB{db: db, accountKeyPerfix: []byte(KeyPrefix)}
}

// SetDB 切换底层数据库
func (acc *DB) SetDB(db dbm.KVDB) *DB {
	acc.db = db
	return acc
}

// LoadAccount 从未写入过的地址返回归 native 程序所有的空账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr, Owner: types.NativeProgramID}
	}
	acc1, err := types.DecodeAccount(addr, value)
	if err != nil {
		alog.Crit("LoadAccount", "addr", addr, "err", err)
		panic(err) //数据库已经损坏
	}
	return acc1
}

// LoadAccounts 批量读取
func (acc *DB) LoadAccounts(addrs []string) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

// SaveAccount 写入数据库
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			alog.Error("SaveAccount", "addr", acc1.Addr, "err", err)
		}
	}
}

// GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	kvset = make([]*types.KeyValue, 1)
	kvset[0] = &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: acc1.Encode(),
	}
	return kvset
}

// AccountKey 账户 key
func (acc *DB) AccountKey(address string) (key []byte) {
	key = make([]byte, 0, len(acc.accountKeyPerfix)+len(address))
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}
