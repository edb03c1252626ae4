// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/roulette/common/address"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	tokenexec "github.com/33cn/roulette/system/dapp/token/executor"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

func assertKeysEqual(expect, got string) error {
	if expect != got {
		rlog.Debug("assertKeysEqual", "expect", expect, "got", got)
		return types.ErrPublicKeyMismatch
	}
	return nil
}

func assertOwnedBy(ai *types.AccountInfo, owner string) error {
	if ai.Owner != owner {
		return types.ErrIncorrectOwner
	}
	return nil
}

func assertSigner(ai *types.AccountInfo) error {
	if !ai.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	return nil
}

// assertIsATA ata 必须是 wallet 持有 mint 的关联账户
func assertIsATA(ata *types.AccountInfo, wallet, mint string) (*tokenty.Account, error) {
	if err := assertOwnedBy(ata, types.TokenProgramID); err != nil {
		return nil, err
	}
	acc, err := tokenexec.LoadAccount(ata)
	if err != nil {
		return nil, err
	}
	if err := assertKeysEqual(wallet, acc.Owner); err != nil {
		return nil, err
	}
	if err := assertKeysEqual(tokenty.AssociatedAddress(wallet, mint), ata.Addr); err != nil {
		return nil, err
	}
	return acc, nil
}

func createProgramAddress(seeds [][]byte) (string, error) {
	addr, err := address.CreateProgramAddress(seeds, types.RouletteProgramID)
	if err != nil {
		return "", types.ErrInvalidSeeds
	}
	return addr, nil
}

// verifyPool 用记录中的 bump 重新派生奖池和 vault 地址并比较, 返回带 bump 的奖池种子
func verifyPool(h *rty.Honeypot, mint string, honeypotInfo, vaultInfo *types.AccountInfo) ([][]byte, error) {
	honeypotSeeds := rty.WithBump(rty.HoneypotSeeds(mint, h.TickSize, h.MaxAmount, h.MinimumBankSize), h.HoneypotBump)
	vaultSeeds := rty.WithBump(rty.VaultSeeds(mint, h.TickSize, h.MaxAmount, h.MinimumBankSize), h.VaultBump)
	honeypotKey, err := createProgramAddress(honeypotSeeds)
	if err != nil {
		return nil, err
	}
	vaultKey, err := createProgramAddress(vaultSeeds)
	if err != nil {
		return nil, err
	}
	if err := assertKeysEqual(honeypotKey, honeypotInfo.Addr); err != nil {
		return nil, err
	}
	if err := assertKeysEqual(vaultKey, vaultInfo.Addr); err != nil {
		return nil, err
	}
	return honeypotSeeds, nil
}

// verifyGuessAccount 用记录中的 bump 重新派生押注记录地址
func verifyGuessAccount(g *rty.LockedGuess, gambler string, vault string, guessInfo *types.AccountInfo) error {
	key, err := createProgramAddress(rty.WithBump(rty.GuessSeeds(gambler, vault), g.Bump))
	if err != nil {
		return err
	}
	return assertKeysEqual(key, guessInfo.Addr)
}

func loadHoneypot(ai *types.AccountInfo) (*rty.Honeypot, error) {
	return rty.DecodeHoneypot(ai.Data)
}

func loadLockedGuess(ai *types.AccountInfo) (*rty.LockedGuess, error) {
	return rty.DecodeLockedGuess(ai.Data)
}
