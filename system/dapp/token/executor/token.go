// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
token 资产账本:
Mint    -> 一种资产, 记录精度, 发行量以及增发权限
Account -> 某个 owner 持有某种资产的余额

关联账户 (associated account) 是 (owner, mint) 在 token 程序下的派生地址,
每个 owner 对每种资产有一个固定的关联账户.
*/

import (
	log "github.com/33cn/roulette/common/log"
	drivers "github.com/33cn/roulette/system/dapp"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

var tokenlog = log.New("module", "execs.token")

var driverName = tokenty.TokenX

// Init 注册驱动
func Init(name string) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newToken)
}

// GetName 驱动名称
func GetName() string {
	return newToken().GetName()
}

// Token 驱动
type Token struct {
	drivers.DriverBase
}

func newToken() drivers.Driver {
	t := &Token{}
	t.SetChild(t)
	return t
}

// GetDriverName 驱动名称
func (t *Token) GetDriverName() string {
	return driverName
}

// Exec 分发指令
func (t *Token) Exec(ctx drivers.Context, data []byte) error {
	action, err := tokenty.DecodeAction(data)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case *tokenty.InitializeMint:
		return t.execInitializeMint(ctx, a)
	case *tokenty.InitializeAccount:
		return t.execInitializeAccount(ctx)
	case *tokenty.InitializeAssociatedAccount:
		return t.execInitializeAssociatedAccount(ctx)
	case *tokenty.MintTo:
		return t.execMintTo(ctx, a)
	case *tokenty.Transfer:
		return t.execTransfer(ctx, a)
	default:
		tokenlog.Error("Exec", "action", action)
		return types.ErrActionNotSupport
	}
}
