// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	log "github.com/33cn/roulette/common/log"
	drivers "github.com/33cn/roulette/system/dapp"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	"github.com/33cn/roulette/types"
)

var olog = log.New("module", "execs.oracle")

var driverName = oty.OracleX

// Init 注册驱动
func Init(name string) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newOracle)
}

// GetName 驱动名称
func GetName() string {
	return newOracle().GetName()
}

// Oracle 随机源驱动
type Oracle struct {
	drivers.DriverBase
}

func newOracle() drivers.Driver {
	o := &Oracle{}
	o.SetChild(o)
	return o
}

// GetDriverName 驱动名称
func (o *Oracle) GetDriverName() string {
	return driverName
}

// Exec 分发指令
func (o *Oracle) Exec(ctx drivers.Context, data []byte) error {
	action, err := oty.DecodeAction(data)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case *oty.CreateFeed:
		return o.execCreateFeed(ctx)
	case *oty.UpdateFeed:
		return o.execUpdateFeed(ctx, a)
	default:
		olog.Error("Exec", "action", action)
		return types.ErrActionNotSupport
	}
}

func (o *Oracle) execCreateFeed(ctx drivers.Context) error {
	iter := drivers.NewAccountIter(ctx.Accounts())
	feedInfo, err := iter.Next()
	if err != nil {
		return err
	}
	authority, err := iter.Next()
	if err != nil {
		return err
	}
	if !authority.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if feedInfo.Owner != types.OracleProgramID {
		return types.ErrIncorrectOwner
	}
	feed, err := oty.DecodeFeed(feedInfo.Data)
	if err != nil {
		return err
	}
	if feed.IsInitialized {
		return types.ErrAccountAlreadyInitialized
	}
	ctx.Log("Instruction: CreateFeed")
	feed = &oty.Feed{IsInitialized: true, Authority: authority.Addr, Slot: uint64(ctx.Height())}
	feedInfo.Data = feed.Encode()
	return nil
}

func (o *Oracle) execUpdateFeed(ctx drivers.Context, a *oty.UpdateFeed) error {
	iter := drivers.NewAccountIter(ctx.Accounts())
	feedInfo, err := iter.Next()
	if err != nil {
		return err
	}
	authority, err := iter.Next()
	if err != nil {
		return err
	}
	clockInfo, err := iter.Next()
	if err != nil {
		return err
	}
	clock, err := drivers.ClockFrom(clockInfo)
	if err != nil {
		return err
	}
	feed, err := oty.LoadFeed(feedInfo)
	if err != nil {
		return err
	}
	if feed.Authority != authority.Addr {
		olog.Debug("UpdateFeed", "authority", feed.Authority, "got", authority.Addr)
		return types.ErrPublicKeyMismatch
	}
	if !authority.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	ctx.Log("Instruction: UpdateFeed")
	feed.Value = a.Value
	feed.Slot = clock.Slot
	feedInfo.Data = feed.Encode()
	return nil
}

// Query_GetFeed params 是 feed 地址
func (o *Oracle) Query_GetFeed(params []byte) (interface{}, error) {
	acc := o.GetAccountDB().LoadAccount(string(params))
	return oty.LoadFeed(&types.AccountInfo{Account: acc})
}
