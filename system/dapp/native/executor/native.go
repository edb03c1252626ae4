// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
native 是账本内置的账户管理程序。

主要提供四种操作：
CreateAccount -> 创建并分配账户
Transfer      -> 转移 lamports
Allocate      -> 分配数据空间
Assign        -> 修改账户 owner
*/

import (
	log "github.com/33cn/roulette/common/log"
	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	"github.com/33cn/roulette/types"
)

var nlog = log.New("module", "execs.native")

var driverName = nty.NativeX

// Init 注册驱动
func Init(name string) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newNative)
}

// GetName 驱动名称
func GetName() string {
	return newNative().GetName()
}

// Native 驱动
type Native struct {
	drivers.DriverBase
}

func newNative() drivers.Driver {
	n := &Native{}
	n.SetChild(n)
	return n
}

// GetDriverName 驱动名称
func (n *Native) GetDriverName() string {
	return driverName
}

// Exec 分发指令
func (n *Native) Exec(ctx drivers.Context, data []byte) error {
	action, err := nty.DecodeAction(data)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case *nty.CreateAccount:
		return n.execCreateAccount(ctx, a)
	case *nty.Transfer:
		return n.execTransfer(ctx, a)
	case *nty.Allocate:
		return n.execAllocate(ctx, a)
	case *nty.Assign:
		return n.execAssign(ctx, a)
	default:
		nlog.Error("Exec", "action", action)
		return types.ErrActionNotSupport
	}
}
