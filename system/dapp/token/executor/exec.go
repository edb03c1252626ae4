// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
)

// LoadMint 读取已经初始化的 mint
func LoadMint(ai *types.AccountInfo) (*tokenty.Mint, error) {
	if ai.Owner != types.TokenProgramID {
		return nil, types.ErrIncorrectOwner
	}
	mint, err := tokenty.DecodeMint(ai.Data)
	if err != nil {
		return nil, err
	}
	if !mint.IsInitialized {
		return nil, types.ErrUninitializedAccount
	}
	return mint, nil
}

// LoadAccount 读取已经初始化的持有账户
func LoadAccount(ai *types.AccountInfo) (*tokenty.Account, error) {
	if ai.Owner != types.TokenProgramID {
		return nil, types.ErrIncorrectOwner
	}
	acc, err := tokenty.DecodeAccount(ai.Data)
	if err != nil {
		return nil, err
	}
	if !acc.IsInitialized() {
		return nil, types.ErrUninitializedAccount
	}
	return acc, nil
}

func checkRentExempt(ai, rentInfo *types.AccountInfo) error {
	rent, err := drivers.RentFrom(rentInfo)
	if err != nil {
		return err
	}
	if !rent.IsExempt(ai.Lamports, uint64(len(ai.Data))) {
		tokenlog.Debug("checkRentExempt", "addr", ai.Addr, "lamports", ai.Lamports)
		return types.ErrNotRentExempt
	}
	return nil
}

func nextN(ctx drivers.Context, n int) ([]*types.AccountInfo, error) {
	iter := drivers.NewAccountIter(ctx.Accounts())
	out := make([]*types.AccountInfo, n)
	for i := range out {
		ai, err := iter.Next()
		if err != nil {
			return nil, err
		}
		out[i] = ai
	}
	return out, nil
}

func (t *Token) execInitializeMint(ctx drivers.Context, a *tokenty.InitializeMint) error {
	accs, err := nextN(ctx, 2)
	if err != nil {
		return err
	}
	mintInfo, rentInfo := accs[0], accs[1]
	if mintInfo.Owner != types.TokenProgramID {
		return types.ErrIncorrectOwner
	}
	mint, err := tokenty.DecodeMint(mintInfo.Data)
	if err != nil {
		return err
	}
	if mint.IsInitialized {
		return types.ErrAccountAlreadyInitialized
	}
	if err := checkRentExempt(mintInfo, rentInfo); err != nil {
		return err
	}
	ctx.Log("Instruction: InitializeMint")
	mint = &tokenty.Mint{IsInitialized: true, Decimals: a.Decimals, MintAuthority: a.MintAuthority}
	mintInfo.Data = mint.Encode()
	return nil
}

func (t *Token) initAccount(target *types.AccountInfo, mint, owner string) error {
	if target.Owner != types.TokenProgramID {
		return types.ErrIncorrectOwner
	}
	acc, err := tokenty.DecodeAccount(target.Data)
	if err != nil {
		return err
	}
	if acc.IsInitialized() {
		return types.ErrAccountAlreadyInitialized
	}
	acc = &tokenty.Account{Mint: mint, Owner: owner, State: tokenty.AccountInitialized}
	target.Data = acc.Encode()
	return nil
}

func (t *Token) execInitializeAccount(ctx drivers.Context) error {
	accs, err := nextN(ctx, 4)
	if err != nil {
		return err
	}
	accInfo, mintInfo, ownerInfo, rentInfo := accs[0], accs[1], accs[2], accs[3]
	if _, err := LoadMint(mintInfo); err != nil {
		return err
	}
	if err := checkRentExempt(accInfo, rentInfo); err != nil {
		return err
	}
	ctx.Log("Instruction: InitializeAccount")
	return t.initAccount(accInfo, mintInfo.Addr, ownerInfo.Addr)
}

func (t *Token) execInitializeAssociatedAccount(ctx drivers.Context) error {
	accs, err := nextN(ctx, 6)
	if err != nil {
		return err
	}
	payer, accInfo, ownerInfo, mintInfo, nativeInfo, rentInfo := accs[0], accs[1], accs[2], accs[3], accs[4], accs[5]
	addr, bump, err := tokenty.FindAssociatedAddress(ownerInfo.Addr, mintInfo.Addr)
	if err != nil {
		return err
	}
	if addr != accInfo.Addr {
		tokenlog.Debug("InitializeAssociatedAccount", "expect", addr, "got", accInfo.Addr)
		return types.ErrInvalidSeeds
	}
	if _, err := LoadMint(mintInfo); err != nil {
		return err
	}
	seeds, err := tokenty.AssociatedSeeds(ownerInfo.Addr, mintInfo.Addr)
	if err != nil {
		return err
	}
	seeds = append(seeds, []byte{bump})
	ctx.Log("Instruction: InitializeAssociatedAccount")
	err = nty.CreateOrAllocate(ctx, accInfo, rentInfo, nativeInfo, payer, types.TokenProgramID, tokenty.AccountLen, seeds)
	if err != nil {
		return err
	}
	return t.initAccount(accInfo, mintInfo.Addr, ownerInfo.Addr)
}

func (t *Token) execMintTo(ctx drivers.Context, a *tokenty.MintTo) error {
	accs, err := nextN(ctx, 3)
	if err != nil {
		return err
	}
	mintInfo, accInfo, authority := accs[0], accs[1], accs[2]
	mint, err := LoadMint(mintInfo)
	if err != nil {
		return err
	}
	if mint.MintAuthority == "" || authority.Addr != mint.MintAuthority {
		return types.ErrInvalidMintAuthority
	}
	if !authority.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	acc, err := LoadAccount(accInfo)
	if err != nil {
		return err
	}
	if acc.Mint != mintInfo.Addr {
		return tokenty.ErrTokenMintMismatch
	}
	if mint.Supply+a.Amount < mint.Supply || acc.Amount+a.Amount < acc.Amount {
		return types.ErrNumericalOverflow
	}
	ctx.Log("Instruction: MintTo")
	mint.Supply += a.Amount
	acc.Amount += a.Amount
	mintInfo.Data = mint.Encode()
	accInfo.Data = acc.Encode()
	return nil
}

func (t *Token) execTransfer(ctx drivers.Context, a *tokenty.Transfer) error {
	accs, err := nextN(ctx, 3)
	if err != nil {
		return err
	}
	srcInfo, dstInfo, authority := accs[0], accs[1], accs[2]
	src, err := LoadAccount(srcInfo)
	if err != nil {
		return err
	}
	dst, err := LoadAccount(dstInfo)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return tokenty.ErrTokenMintMismatch
	}
	if authority.Addr != src.Owner {
		return tokenty.ErrTokenOwnerMismatch
	}
	if !authority.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if src.Amount < a.Amount {
		tokenlog.Debug("Transfer", "from", srcInfo.Addr, "balance", src.Amount, "amount", a.Amount)
		return types.ErrInsufficientFunds
	}
	ctx.Log("Instruction: Transfer")
	if srcInfo.Addr == dstInfo.Addr {
		return nil
	}
	if dst.Amount+a.Amount < dst.Amount {
		return types.ErrNumericalOverflow
	}
	src.Amount -= a.Amount
	dst.Amount += a.Amount
	srcInfo.Data = src.Encode()
	dstInfo.Data = dst.Encode()
	return nil
}
