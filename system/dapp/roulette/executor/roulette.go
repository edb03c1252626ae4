// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
轮盘游戏:

奖池 (honeypot) 记录 tick_size, 单次押注上限以及最低储备, vault 是奖池持有资产的 token 账户,
vault 的转账权限属于奖池的派生地址, 只有本程序用奖池种子签名才能从 vault 转出.

押注记录 (guess account) 的状态:
空闲 -> PlaceGuesses -> 锁定 -> Spin (开奖) 或者 TryCancel (退款) -> 空闲

Spin 的随机数来自 oracle, 开奖的步数必须晚于押注步数并且不超过 tolerance.
*/

import (
	log "github.com/33cn/roulette/common/log"
	drivers "github.com/33cn/roulette/system/dapp"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
)

var rlog = log.New("module", "execs.roulette")

var driverName = rty.RouletteX

// Init 注册驱动
func Init(name string) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newRoulette)
}

// GetName 驱动名称
func GetName() string {
	return newRoulette().GetName()
}

// Roulette 轮盘驱动
type Roulette struct {
	drivers.DriverBase
}

func newRoulette() drivers.Driver {
	r := &Roulette{}
	r.SetChild(r)
	return r
}

// GetDriverName 驱动名称
func (r *Roulette) GetDriverName() string {
	return driverName
}

// Exec 每种指令对应一个处理函数
func (r *Roulette) Exec(ctx drivers.Context, data []byte) error {
	action, err := rty.DecodeAction(data)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case *rty.Initialize:
		ctx.Log("Instruction 0: Initialize")
		return r.execInitialize(ctx)
	case *rty.Sample:
		ctx.Log("Instruction 1: Sample")
		return r.execSample(ctx, a.Tolerance)
	case *rty.InitializeHoneypot:
		ctx.Log("Instruction 2: InitializeHoneypot")
		return r.execInitializeHoneypot(ctx, a)
	case *rty.WithdrawFromHoneypot:
		ctx.Log("Instruction 3: WithdrawFromHoneypot")
		return r.execWithdrawFromHoneypot(ctx, a.Amount)
	case *rty.InitializeGuessAccount:
		ctx.Log("Instruction 4: InitializeGuessAccount")
		return r.execInitializeGuessAccount(ctx)
	case *rty.PlaceGuesses:
		ctx.Log("Instruction 5: PlaceGuesses")
		return r.execPlaceGuesses(ctx, a.Guesses)
	case *rty.Spin:
		ctx.Log("Instruction 6: Spin")
		return r.execSpin(ctx, a.Tolerance)
	case *rty.TryCancel:
		ctx.Log("Instruction 7: TryCancel")
		return r.execTryCancel(ctx)
	default:
		rlog.Error("Exec", "action", action)
		return types.ErrActionNotSupport
	}
}

func nextN(ctx drivers.Context, n int) ([]*types.AccountInfo, error) {
	accs := ctx.Accounts()
	if len(accs) < n {
		return nil, types.ErrNotEnoughAccountKeys
	}
	return accs[:n], nil
}
