// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 程序驱动接口, 驱动注册以及按程序地址分发
package dapp

import (
	"reflect"

	"github.com/33cn/roulette/account"
	dbm "github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/types"
)

var blog = log.New("module", "execs.base")

// Context 一条指令 (或者一次跨程序调用) 的执行环境, 由 executor 实现
type Context interface {
	// ProgramID 当前执行的程序地址
	ProgramID() string
	// Accounts 按指令中的顺序排列的账户
	Accounts() []*types.AccountInfo
	Height() int64
	BlockTime() int64
	// InstructionIndex 顶层指令在交易中的序号
	InstructionIndex() int
	Instructions() []*types.Instruction
	// Invoke 调用另一个程序. signerSeeds 中每一组种子派生出的地址在被调用方视为已签名
	Invoke(ix *types.Instruction, signerSeeds ...[][]byte) error
	// Log 程序输出, 写入回执
	Log(format string, args ...interface{})
	AddLog(ty int32, data []byte)
	Config() *types.Config
}

// Driver 程序驱动
type Driver interface {
	SetStateDB(dbm.KV)
	SetLocalDB(dbm.KVDBList)
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	SetEnv(height, blocktime int64)
	Exec(ctx Context, data []byte) error
	ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
}

// DriverBase 驱动的公共部分
type DriverBase struct {
	statedb    dbm.KV
	localdb    dbm.KVDBList
	accountdb  *account.DB
	height     int64
	blocktime  int64
	child      Driver
	childValue reflect.Value
}

// SetChild 设置具体的驱动, Query 通过反射调用它的 Query_ 方法
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
}

// SetEnv 设置当前步数和时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// GetHeight 当前步数
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime 当前时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

// GetName 驱动名称
func (d *DriverBase) GetName() string {
	return d.child.GetDriverName()
}

// SetStateDB 状态数据库
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
	d.accountdb = account.NewAccountDB(db)
}

// GetStateDB 状态数据库
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// GetAccountDB 状态数据库上的账户视图, 查询时使用
func (d *DriverBase) GetAccountDB() *account.DB {
	return d.accountdb
}

// SetLocalDB 本地数据库
func (d *DriverBase) SetLocalDB(db dbm.KVDBList) {
	d.localdb = db
}

// GetLocalDB 本地数据库
func (d *DriverBase) GetLocalDB() dbm.KVDBList {
	return d.localdb
}

// ExecLocal 默认不写本地数据库
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) (*types.LocalDBSet, error) {
	return &types.LocalDBSet{}, nil
}

// Query 调用子类的 Query_<funcName>(params []byte) (interface{}, error)
func (d *DriverBase) Query(funcName string, params []byte) (ret interface{}, err error) {
	if d.child == nil {
		return nil, types.ErrQueryNotSupport
	}
	method := d.childValue.MethodByName("Query_" + funcName)
	if !method.IsValid() {
		return nil, types.ErrQueryNotSupport
	}
	mtype := method.Type()
	if mtype.NumIn() != 1 || mtype.In(0) != reflect.TypeOf([]byte(nil)) || mtype.NumOut() != 2 || !mtype.Out(1).Implements(typeOfError) {
		blog.Error("Query", "func", funcName, "err", "bad method signature")
		return nil, types.ErrQueryNotSupport
	}
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call query error", "func", funcName, "info", r)
			ret = nil
			err = types.ErrQueryNotSupport
		}
	}()
	out := method.Call([]reflect.Value{reflect.ValueOf(params)})
	if e := out[1].Interface(); e != nil {
		return nil, e.(error)
	}
	return out[0].Interface(), nil
}

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()
