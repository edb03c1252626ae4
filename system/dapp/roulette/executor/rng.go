// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
)

func (r *Roulette) execInitialize(ctx drivers.Context) error {
	accs, err := nextN(ctx, 4)
	if err != nil {
		return err
	}
	rngInfo, payerInfo, rentInfo, nativeInfo := accs[0], accs[1], accs[2], accs[3]
	if !rngInfo.DataIsEmpty() {
		ctx.Log("Received nonempty account")
		return types.ErrAccountAlreadyInitialized
	}
	rngKey, bump, err := rty.FindRandomAddress(payerInfo.Addr)
	if err != nil {
		return err
	}
	if rngKey != rngInfo.Addr {
		ctx.Log("RNG account doesn't match")
		return types.ErrInvalidArgument
	}
	seeds := rty.WithBump(rty.RandomSeeds(payerInfo.Addr), bump)
	return nty.CreateOrAllocate(ctx, rngInfo, rentInfo, nativeInfo, payerInfo, types.RouletteProgramID, rty.RNGLen, seeds)
}

// sample 读取 oracle 随机数, accounts 是 [clock, feed...]
func sample(ctx drivers.Context, accounts []*types.AccountInfo, tolerance uint64) (uint64, uint64, error) {
	value, step, err := oty.Sample(accounts, tolerance, ctx.Config().Oracle.MaxFeeds)
	if err != nil {
		rlog.Debug("sample", "err", err)
		return 0, 0, err
	}
	return value, step, nil
}

// updateRNG 写入请求方的随机数缓存
func updateRNG(ctx drivers.Context, rngInfo *types.AccountInfo, value, step uint64) error {
	rng, err := rty.DecodeRNG(rngInfo.Data)
	if err != nil {
		return err
	}
	if rng.Version == rty.VersionUninitialized {
		rng.Version = rty.VersionRNGV1
	}
	rng.Value = value
	rng.Slot = step
	ctx.Log("Sample %d", value)
	rngInfo.Data = rng.Encode()
	return nil
}

func (r *Roulette) execSample(ctx drivers.Context, tolerance uint64) error {
	accs := ctx.Accounts()
	if len(accs) < 1 {
		return types.ErrNotEnoughAccountKeys
	}
	value, step, err := sample(ctx, accs[1:], tolerance)
	if err != nil {
		return err
	}
	return updateRNG(ctx, accs[0], value, step)
}
