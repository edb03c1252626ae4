// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"context"

	"github.com/33cn/roulette/account"
	drivers "github.com/33cn/roulette/system/dapp"
	"github.com/33cn/roulette/types"
)

//执行器 -> db 环境, 每笔交易一个
type execEnv struct {
	exec      *Executor
	tx        *types.Transaction
	height    int64
	blocktime int64
	stateDB   *StateDB
	accountDB *account.DB

	// 交易内所有指令共享同一份账户
	accounts map[string]*types.Account
	origin   map[string][]byte
	ixIndex  int
	stack    []string
	logs     []*types.ReceiptLog
}

func newExecEnv(exec *Executor, tx *types.Transaction, height, blocktime int64) *execEnv {
	e := &execEnv{
		exec:      exec,
		tx:        tx,
		height:    height,
		blocktime: blocktime,
		stateDB:   NewStateDB(exec.db),
		accounts:  make(map[string]*types.Account),
		origin:    make(map[string][]byte),
	}
	e.accountDB = account.NewAccountDB(e.stateDB)
	return e
}

// isSysvar sysvar 由执行环境生成, 程序只能读取
func isSysvar(addr string) bool {
	return addr == types.SysvarClockID || addr == types.SysvarRentID || addr == types.SysvarInstructionsID
}

func isReadonlyAddr(addr string) bool {
	return isSysvar(addr) || drivers.IsDriverAddress(addr)
}

func (e *execEnv) loadAccount(addr string) *types.Account {
	if acc, ok := e.accounts[addr]; ok {
		return acc
	}
	var acc *types.Account
	switch {
	case addr == types.SysvarClockID:
		clock := &types.Clock{Slot: uint64(e.height), UnixTimestamp: e.blocktime}
		acc = &types.Account{Addr: addr, Owner: types.NativeProgramID, Data: clock.Encode()}
	case addr == types.SysvarRentID:
		rent := &types.Rent{LamportsPerByte: e.exec.cfg.Exec.LamportsPerByte}
		acc = &types.Account{Addr: addr, Owner: types.NativeProgramID, Data: rent.Encode()}
	case addr == types.SysvarInstructionsID:
		acc = &types.Account{Addr: addr, Owner: types.NativeProgramID,
			Data: types.EncodeInstructionsSysvar(e.tx.Instructions, uint16(e.ixIndex))}
	case drivers.IsDriverAddress(addr):
		acc = &types.Account{Addr: addr, Owner: types.NativeProgramID, Executable: true}
	default:
		acc = e.accountDB.LoadAccount(addr)
		e.origin[addr] = acc.Encode()
	}
	e.accounts[addr] = acc
	return acc
}

func (e *execEnv) execTx(ctx context.Context) (*types.Receipt, error) {
	e.stateDB.Begin()
	for i, ix := range e.tx.Instructions {
		if err := ctx.Err(); err != nil {
			return e.fail(err)
		}
		e.ixIndex = i
		if acc, ok := e.accounts[types.SysvarInstructionsID]; ok {
			acc.Data = types.EncodeInstructionsSysvar(e.tx.Instructions, uint16(i))
		}
		if !drivers.IsDriverAddress(ix.ProgramID) {
			return e.fail(types.ErrUnknownProgram)
		}
		infos := make([]*types.AccountInfo, 0, len(ix.Accounts))
		for _, meta := range ix.Accounts {
			infos = append(infos, &types.AccountInfo{
				Account:    e.loadAccount(meta.Addr),
				IsSigner:   meta.IsSigner,
				IsWritable: meta.IsWritable && !isReadonlyAddr(meta.Addr),
			})
		}
		f := newFrame(e, ix.ProgramID, infos, 1)
		if err := f.run(ix.Data); err != nil {
			elog.Debug("execTx", "index", i, "program", ix.ProgramID, "err", err)
			return e.fail(err)
		}
		e.saveChanged()
	}
	e.stateDB.Commit()
	batch := e.exec.db.NewBatch(true)
	kvs := e.stateDB.Flush(batch)
	if err := batch.Write(); err != nil {
		elog.Error("execTx flush", "err", err)
		return nil, err
	}
	return &types.Receipt{Ty: types.ExecOk, KV: kvs, Logs: e.logs}, nil
}

// saveChanged 把修改过的账户写入状态数据库
func (e *execEnv) saveChanged() {
	for addr, acc := range e.accounts {
		if isReadonlyAddr(addr) {
			continue
		}
		value := acc.Encode()
		if bytes.Equal(value, e.origin[addr]) {
			continue
		}
		e.accountDB.SaveAccount(acc)
		e.origin[addr] = value
	}
}

func (e *execEnv) fail(err error) (*types.Receipt, error) {
	e.stateDB.Rollback()
	logs := append(e.logs, &types.ReceiptLog{Ty: types.TyLogErr, Log: []byte(err.Error())})
	if family, code, ok := types.ErrorCode(err); ok {
		logs = append(logs, &types.ReceiptLog{Ty: types.TyLogErrCode, Log: types.EncodeErrCode(family, code)})
	}
	return &types.Receipt{Ty: types.ExecErr, Logs: logs}, err
}

func (e *execEnv) loadDriver(program string) (drivers.Driver, error) {
	d, err := drivers.LoadDriverByAddress(program)
	if err != nil {
		return nil, err
	}
	d.SetEnv(e.height, e.blocktime)
	d.SetStateDB(e.stateDB)
	d.SetLocalDB(e.exec.db)
	return d, nil
}

// execLocal 提交之后每个顶层程序执行一次, 失败只记录日志
func (e *execEnv) execLocal(receipt *types.Receipt) {
	done := make(map[string]bool)
	for i, ix := range e.tx.Instructions {
		if done[ix.ProgramID] {
			continue
		}
		done[ix.ProgramID] = true
		d, err := e.loadDriver(ix.ProgramID)
		if err != nil {
			continue
		}
		set, err := d.ExecLocal(e.tx, receipt, i)
		if err != nil {
			elog.Error("execLocal", "driver", d.GetDriverName(), "err", err)
			continue
		}
		if set == nil || len(set.KV) == 0 {
			continue
		}
		batch := e.exec.db.NewBatch(false)
		for _, kv := range set.KV {
			if kv.Value == nil {
				batch.Delete(kv.Key)
			} else {
				batch.Set(kv.Key, kv.Value)
			}
		}
		if err := batch.Write(); err != nil {
			elog.Error("execLocal write", "driver", d.GetDriverName(), "err", err)
		}
	}
}
