// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 账本的执行环境: 签名检查, 账户锁, 指令分发, 跨程序调用以及提交
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/33cn/roulette/account"
	dbm "github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/metrics"
	"github.com/33cn/roulette/pluginmgr"
	drivers "github.com/33cn/roulette/system/dapp"
	"github.com/33cn/roulette/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

// SetLogLevel set log level
func SetLogLevel(level string) {
	log.SetLogLevel(level)
}

// DisableLog disable log
func DisableLog() {
	elog.SetHandler(log15.DiscardHandler())
}

// Executor 执行交易. 同一个账户的写操作按交易串行, 互不相关的交易可以并发执行
type Executor struct {
	cfg   *types.Config
	db    dbm.DB
	locks *lockTable

	mu        sync.RWMutex
	height    int64
	blocktime int64
}

// New 创建执行器, 从数据库恢复当前步数
func New(cfg *types.Config, db dbm.DB) (*Executor, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	pluginmgr.InitExec()
	metrics.Enable(cfg.Exec.EnableMetrics)
	exec := &Executor{
		cfg:   cfg,
		db:    db,
		locks: &lockTable{},
	}
	value, err := db.Get(types.KeyHeight)
	if err != nil && err != dbm.ErrNotFoundInDb {
		return nil, errors.Wrap(err, "load height")
	}
	if err == nil {
		dec := types.NewDecoder(value)
		exec.height = dec.I64()
		exec.blocktime = dec.I64()
		if dec.Err() != nil {
			return nil, errors.Wrap(dec.Err(), "decode height")
		}
	}
	elog.Info("New executor", "height", exec.height, "drivers", drivers.DriverNames())
	return exec, nil
}

// Config 配置
func (exec *Executor) Config() *types.Config {
	return exec.cfg
}

// SetEnv 设置当前步数和时间, 之后执行的交易都使用它
func (exec *Executor) SetEnv(height, blocktime int64) error {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	enc := types.NewEncoder(16)
	enc.I64(height)
	enc.I64(blocktime)
	if err := exec.db.SetSync(types.KeyHeight, enc.Result()); err != nil {
		return errors.Wrap(err, "save height")
	}
	exec.height = height
	exec.blocktime = blocktime
	return nil
}

// Height 当前步数
func (exec *Executor) Height() int64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.height
}

// BlockTime 当前时间
func (exec *Executor) BlockTime() int64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.blocktime
}

func (exec *Executor) env() (int64, int64) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.height, exec.blocktime
}

// ExecTx 执行一笔交易. 任何一条指令失败, 整笔交易回滚, 返回的回执只包含日志.
func (exec *Executor) ExecTx(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	start := time.Now()
	if err := tx.CheckSign(); err != nil {
		elog.Error("ExecTx", "err", err)
		metrics.Mark(metrics.TxFailed, 1)
		return nil, err
	}
	unlock := exec.locks.lock(lockSet(tx))
	defer unlock()

	height, blocktime := exec.env()
	e := newExecEnv(exec, tx, height, blocktime)
	receipt, err := e.execTx(ctx)
	if err != nil {
		metrics.Mark(metrics.TxFailed, 1)
		return receipt, err
	}
	e.execLocal(receipt)
	metrics.Mark(metrics.TxOk, 1)
	metrics.UpdateSince(metrics.TxTime, start)
	return receipt, nil
}

// Query 只读查询, name 是程序名称或者程序地址
func (exec *Executor) Query(name string, funcName string, params []byte) (interface{}, error) {
	driver, err := drivers.LoadDriver(name)
	if err != nil {
		driver, err = drivers.LoadDriverByAddress(name)
		if err != nil {
			return nil, err
		}
	}
	height, blocktime := exec.env()
	driver.SetEnv(height, blocktime)
	driver.SetStateDB(NewStateDB(exec.db))
	driver.SetLocalDB(exec.db)
	return driver.Query(funcName, params)
}

// Airdrop 直接给地址增加 lamports, 只用于创世以及本地节点
func (exec *Executor) Airdrop(addr string, lamports uint64) (*types.Receipt, error) {
	unlock := exec.locks.lockAddrs(true, addr)
	defer unlock()
	return account.NewAccountDB(exec.db).GenesisInit(addr, lamports)
}

// LoadAccount 读取已提交的账户
func (exec *Executor) LoadAccount(addr string) *types.Account {
	unlock := exec.locks.lockAddrs(false, addr)
	defer unlock()
	return account.NewAccountDB(exec.db).LoadAccount(addr)
}
