// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// 派生地址的域标签
var (
	SeedRandom   = []byte("random")
	SeedHoneypot = []byte("honeypot")
	SeedVault    = []byte("vault")
	SeedGuess    = []byte("guess_account")
)

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// WithBump 追加 bump 作为最后一个种子
func WithBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}

// RandomSeeds 随机数缓存: ["random", payer, program]
func RandomSeeds(payer string) [][]byte {
	return [][]byte{SeedRandom, address.MustBytes(payer), address.MustBytes(types.RouletteProgramID)}
}

func poolSeeds(tag []byte, mint string, tickSize, maxAmount, minimumBankSize uint64) [][]byte {
	return [][]byte{tag, address.MustBytes(mint), le64(tickSize), le64(maxAmount), le64(minimumBankSize)}
}

// HoneypotSeeds ["honeypot", mint, tick_size, max_amount, minimum_bank_size]
func HoneypotSeeds(mint string, tickSize, maxAmount, minimumBankSize uint64) [][]byte {
	return poolSeeds(SeedHoneypot, mint, tickSize, maxAmount, minimumBankSize)
}

// VaultSeeds ["vault", mint, tick_size, max_amount, minimum_bank_size]
func VaultSeeds(mint string, tickSize, maxAmount, minimumBankSize uint64) [][]byte {
	return poolSeeds(SeedVault, mint, tickSize, maxAmount, minimumBankSize)
}

// GuessSeeds ["guess_account", gambler, vault]
func GuessSeeds(gambler, vault string) [][]byte {
	return [][]byte{SeedGuess, address.MustBytes(gambler), address.MustBytes(vault)}
}

// HoneypotSeedsOf 已有奖池记录的种子, 不含 bump
func HoneypotSeedsOf(h *Honeypot) [][]byte {
	return HoneypotSeeds(h.Mint, h.TickSize, h.MaxAmount, h.MinimumBankSize)
}

// VaultSeedsOf 已有奖池记录的 vault 种子, 不含 bump
func VaultSeedsOf(h *Honeypot) [][]byte {
	return VaultSeeds(h.Mint, h.TickSize, h.MaxAmount, h.MinimumBankSize)
}

// FindRandomAddress 随机数缓存地址
func FindRandomAddress(payer string) (string, uint8, error) {
	return address.FindProgramAddress(RandomSeeds(payer), types.RouletteProgramID)
}

// FindHoneypotAddress 奖池地址
func FindHoneypotAddress(mint string, tickSize, maxAmount, minimumBankSize uint64) (string, uint8, error) {
	return address.FindProgramAddress(HoneypotSeeds(mint, tickSize, maxAmount, minimumBankSize), types.RouletteProgramID)
}

// FindVaultAddress vault 地址
func FindVaultAddress(mint string, tickSize, maxAmount, minimumBankSize uint64) (string, uint8, error) {
	return address.FindProgramAddress(VaultSeeds(mint, tickSize, maxAmount, minimumBankSize), types.RouletteProgramID)
}

// FindGuessAddress 押注记录地址
func FindGuessAddress(gambler, vault string) (string, uint8, error) {
	return address.FindProgramAddress(GuessSeeds(gambler, vault), types.RouletteProgramID)
}
