// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

func (r *Roulette) execInitializeHoneypot(ctx drivers.Context, a *rty.InitializeHoneypot) error {
	accs, err := nextN(ctx, 7)
	if err != nil {
		return err
	}
	honeypotInfo, mintInfo, vaultInfo, ownerInfo := accs[0], accs[1], accs[2], accs[3]
	tokenInfo, rentInfo, nativeInfo := accs[4], accs[5], accs[6]

	ctx.Log("Checking CPI program ID's")
	if err := assertKeysEqual(types.NativeProgramID, nativeInfo.Addr); err != nil {
		return err
	}
	if err := assertKeysEqual(types.TokenProgramID, tokenInfo.Addr); err != nil {
		return err
	}
	ctx.Log("Checking proper mint")
	if err := assertOwnedBy(mintInfo, tokenInfo.Addr); err != nil {
		return err
	}
	honeypotKey, honeypotBump, err := rty.FindHoneypotAddress(mintInfo.Addr, a.TickSize, a.MaxAmount, a.MinimumBankSize)
	if err != nil {
		return err
	}
	vaultKey, vaultBump, err := rty.FindVaultAddress(mintInfo.Addr, a.TickSize, a.MaxAmount, a.MinimumBankSize)
	if err != nil {
		return err
	}
	ctx.Log("Vault %s: ", vaultKey)
	if err := assertKeysEqual(honeypotKey, honeypotInfo.Addr); err != nil {
		return err
	}
	if err := assertKeysEqual(vaultKey, vaultInfo.Addr); err != nil {
		return err
	}

	honeypotSeeds := rty.WithBump(rty.HoneypotSeeds(mintInfo.Addr, a.TickSize, a.MaxAmount, a.MinimumBankSize), honeypotBump)
	vaultSeeds := rty.WithBump(rty.VaultSeeds(mintInfo.Addr, a.TickSize, a.MaxAmount, a.MinimumBankSize), vaultBump)
	err = nty.CreateOrAllocate(ctx, honeypotInfo, rentInfo, nativeInfo, ownerInfo, types.RouletteProgramID, rty.HoneypotLen, honeypotSeeds)
	if err != nil {
		return err
	}
	err = nty.CreateOrAllocate(ctx, vaultInfo, rentInfo, nativeInfo, ownerInfo, types.TokenProgramID, tokenty.AccountLen, vaultSeeds)
	if err != nil {
		return err
	}
	// vault 的 owner 是奖池地址
	if err := ctx.Invoke(tokenty.NewInitializeAccount(vaultInfo.Addr, mintInfo.Addr, honeypotInfo.Addr)); err != nil {
		return err
	}
	honeypot := &rty.Honeypot{
		Version:         rty.VersionHoneypotV1,
		HoneypotBump:    honeypotBump,
		VaultBump:       vaultBump,
		Owner:           ownerInfo.Addr,
		Mint:            mintInfo.Addr,
		TickSize:        a.TickSize,
		MaxAmount:       a.MaxAmount,
		MinimumBankSize: a.MinimumBankSize,
	}
	honeypotInfo.Data = honeypot.Encode()
	return nil
}

func (r *Roulette) execWithdrawFromHoneypot(ctx drivers.Context, amount uint64) error {
	accs, err := nextN(ctx, 6)
	if err != nil {
		return err
	}
	honeypotInfo, vaultInfo, mintInfo, ownerInfo, ownerATAInfo, tokenInfo := accs[0], accs[1], accs[2], accs[3], accs[4], accs[5]
	honeypot, err := loadHoneypot(honeypotInfo)
	if err != nil {
		return err
	}
	if _, err := assertIsATA(ownerATAInfo, ownerInfo.Addr, mintInfo.Addr); err != nil {
		return err
	}
	if err := assertSigner(ownerInfo); err != nil {
		return err
	}
	if err := assertOwnedBy(honeypotInfo, types.RouletteProgramID); err != nil {
		return err
	}
	if err := assertOwnedBy(mintInfo, tokenInfo.Addr); err != nil {
		return err
	}
	if err := assertKeysEqual(types.TokenProgramID, tokenInfo.Addr); err != nil {
		return err
	}
	if err := assertKeysEqual(honeypot.Owner, ownerInfo.Addr); err != nil {
		return err
	}
	if err := assertKeysEqual(honeypot.Mint, mintInfo.Addr); err != nil {
		return err
	}
	honeypotSeeds, err := verifyPool(honeypot, mintInfo.Addr, honeypotInfo, vaultInfo)
	if err != nil {
		return err
	}
	ix := tokenty.NewTransfer(vaultInfo.Addr, ownerATAInfo.Addr, honeypotInfo.Addr, amount)
	if err := ctx.Invoke(ix, honeypotSeeds); err != nil {
		return err
	}
	receipt := &rty.ReceiptTransfer{To: ownerInfo.Addr, Vault: vaultInfo.Addr, Amount: amount}
	ctx.AddLog(rty.TyLogRouletteWithdraw, receipt.Encode())
	return nil
}
