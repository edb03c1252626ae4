// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	drivers "github.com/33cn/roulette/system/dapp"
	"github.com/33cn/roulette/types"
)

// CreateOrAllocate 通过跨程序调用在派生地址上创建账户:
// 余额不足免租时由 payer 补足, 然后分配 size 字节并交给 owner.
// seeds 必须包含 bump, 派生程序是当前调用方.
func CreateOrAllocate(ctx drivers.Context, target, rentInfo, nativeInfo, payer *types.AccountInfo,
	owner string, size uint64, seeds [][]byte) error {
	if nativeInfo.Addr != types.NativeProgramID || rentInfo.Addr != types.SysvarRentID {
		return types.ErrPublicKeyMismatch
	}
	rent, err := drivers.RentFrom(rentInfo)
	if err != nil {
		return err
	}
	required := rent.MinimumBalance(size)
	if required < 1 {
		required = 1
	}
	if target.Lamports >= required {
		required = 0
	} else {
		required -= target.Lamports
	}
	if required > 0 {
		ctx.Log("Transfer %d lamports to the new account", required)
		if err := ctx.Invoke(NewTransfer(payer.Addr, target.Addr, required)); err != nil {
			return err
		}
	}
	ctx.Log("Allocate space for the account")
	if err := ctx.Invoke(NewAllocate(target.Addr, size), seeds); err != nil {
		return err
	}
	ctx.Log("Assign program to the %s", owner)
	return ctx.Invoke(NewAssign(target.Addr, owner), seeds)
}
