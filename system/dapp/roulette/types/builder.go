// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

// PoolKey 确定一个奖池的参数, 奖池和 vault 的地址都由它派生
type PoolKey struct {
	Mint            string
	TickSize        uint64
	MaxAmount       uint64
	MinimumBankSize uint64
}

// Honeypot 奖池地址
func (k *PoolKey) Honeypot() (string, error) {
	addr, _, err := FindHoneypotAddress(k.Mint, k.TickSize, k.MaxAmount, k.MinimumBankSize)
	return addr, err
}

// Vault vault 地址
func (k *PoolKey) Vault() (string, error) {
	addr, _, err := FindVaultAddress(k.Mint, k.TickSize, k.MaxAmount, k.MinimumBankSize)
	return addr, err
}

// Addresses 奖池和 vault 地址
func (k *PoolKey) Addresses() (honeypot string, vault string, err error) {
	if honeypot, err = k.Honeypot(); err != nil {
		return "", "", err
	}
	if vault, err = k.Vault(); err != nil {
		return "", "", err
	}
	return honeypot, vault, nil
}

// GuessAccount 玩家在这个奖池上的押注记录地址
func (k *PoolKey) GuessAccount(gambler string) (string, error) {
	vault, err := k.Vault()
	if err != nil {
		return "", err
	}
	addr, _, err := FindGuessAddress(gambler, vault)
	return addr, err
}

func newInstruction(a Action, metas ...types.AccountMeta) *types.Instruction {
	return types.NewInstruction(types.RouletteProgramID, EncodeAction(a), metas...)
}

func w(addr string) types.AccountMeta { return types.NewAccountMeta(addr, false) }

func ws(addr string) types.AccountMeta { return types.NewAccountMeta(addr, true) }

func r(addr string) types.AccountMeta { return types.NewReadonlyAccountMeta(addr, false) }

func rs(addr string) types.AccountMeta { return types.NewReadonlyAccountMeta(addr, true) }

// NewInitialize [rng(w), payer(s,w), rent, native]
func NewInitialize(payer string) (*types.Instruction, error) {
	rng, _, err := FindRandomAddress(payer)
	if err != nil {
		return nil, err
	}
	return newInstruction(&Initialize{},
		w(rng), ws(payer), r(types.SysvarRentID), r(types.NativeProgramID)), nil
}

// NewSample [rng(w), clock, feed...]
func NewSample(rng string, tolerance uint64, feeds ...string) *types.Instruction {
	metas := append([]types.AccountMeta{w(rng)}, oty.SampleMetas(feeds...)...)
	return newInstruction(&Sample{Tolerance: tolerance}, metas...)
}

// NewInitializeHoneypot [honeypot(w), mint, vault(w), owner(s,w), token, rent, native]
func NewInitializeHoneypot(owner string, key *PoolKey) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	a := &InitializeHoneypot{TickSize: key.TickSize, MaxAmount: key.MaxAmount, MinimumBankSize: key.MinimumBankSize}
	return newInstruction(a,
		w(honeypot), r(key.Mint), w(vault), ws(owner), r(types.TokenProgramID),
		r(types.SysvarRentID), r(types.NativeProgramID)), nil
}

// NewWithdrawFromHoneypot [honeypot, vault(w), mint, owner(s), owner_ata(w), token]
func NewWithdrawFromHoneypot(owner string, key *PoolKey, amount uint64) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	ata := tokenty.AssociatedAddress(owner, key.Mint)
	return newInstruction(&WithdrawFromHoneypot{Amount: amount},
		r(honeypot), w(vault), r(key.Mint), rs(owner), w(ata), r(types.TokenProgramID)), nil
}

// NewInitializeGuessAccount [gambler(s,w), mint, honeypot, vault, guess(w), rent, native]
func NewInitializeGuessAccount(gambler string, key *PoolKey) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	guess, _, err := FindGuessAddress(gambler, vault)
	if err != nil {
		return nil, err
	}
	return newInstruction(&InitializeGuessAccount{},
		ws(gambler), r(key.Mint), r(honeypot), r(vault), w(guess),
		r(types.SysvarRentID), r(types.NativeProgramID)), nil
}

// NewPlaceGuesses [gambler(s), gambler_ata(w), mint, honeypot, vault(w), guess(w), token, clock]
func NewPlaceGuesses(gambler string, key *PoolKey, guesses []RouletteGuess) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	guess, _, err := FindGuessAddress(gambler, vault)
	if err != nil {
		return nil, err
	}
	ata := tokenty.AssociatedAddress(gambler, key.Mint)
	return newInstruction(&PlaceGuesses{Guesses: guesses},
		rs(gambler), w(ata), r(key.Mint), r(honeypot), w(vault), w(guess),
		r(types.TokenProgramID), r(types.SysvarClockID)), nil
}

// NewSpin [rng(w), guess(w), gambler, gambler_ata(w), mint, honeypot, vault(w), token, instructions, clock, feed...]
func NewSpin(rng, gambler string, key *PoolKey, tolerance uint64, feeds ...string) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	guess, _, err := FindGuessAddress(gambler, vault)
	if err != nil {
		return nil, err
	}
	ata := tokenty.AssociatedAddress(gambler, key.Mint)
	metas := []types.AccountMeta{
		w(rng), w(guess), r(gambler), w(ata), r(key.Mint), r(honeypot), w(vault),
		r(types.TokenProgramID), r(types.SysvarInstructionsID),
	}
	metas = append(metas, oty.SampleMetas(feeds...)...)
	return newInstruction(&Spin{Tolerance: tolerance}, metas...), nil
}

// NewTryCancel [guess(w), gambler, gambler_ata(w), mint, honeypot, vault(w), token]
func NewTryCancel(gambler string, key *PoolKey) (*types.Instruction, error) {
	honeypot, vault, err := key.Addresses()
	if err != nil {
		return nil, err
	}
	guess, _, err := FindGuessAddress(gambler, vault)
	if err != nil {
		return nil, err
	}
	ata := tokenty.AssociatedAddress(gambler, key.Mint)
	return newInstruction(&TryCancel{},
		w(guess), r(gambler), w(ata), r(key.Mint), r(honeypot), w(vault), r(types.TokenProgramID)), nil
}
