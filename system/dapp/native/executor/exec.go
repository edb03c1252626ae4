// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	drivers "github.com/33cn/roulette/system/dapp"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	"github.com/33cn/roulette/types"
)

func transfer(from, to *types.AccountInfo, lamports uint64) error {
	if from.Lamports < lamports {
		nlog.Debug("transfer", "from", from.Addr, "balance", from.Lamports, "amount", lamports)
		return types.ErrInsufficientFunds
	}
	if to.Lamports+lamports < to.Lamports {
		return types.ErrNumericalOverflow
	}
	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

// allocate 只能给没有数据并且归 native 所有的账户分配空间
func allocate(acc *types.AccountInfo, space uint64) error {
	if len(acc.Data) != 0 || acc.Owner != types.NativeProgramID {
		nlog.Debug("allocate", "addr", acc.Addr, "owner", acc.Owner, "len", len(acc.Data))
		return types.ErrAccountAlreadyInitialized
	}
	if space > types.MaxAccountDataSize {
		return types.ErrInvalidArgument
	}
	acc.Data = make([]byte, space)
	return nil
}

func (n *Native) execCreateAccount(ctx drivers.Context, a *nty.CreateAccount) error {
	iter := drivers.NewAccountIter(ctx.Accounts())
	from, err := iter.Next()
	if err != nil {
		return err
	}
	to, err := iter.Next()
	if err != nil {
		return err
	}
	if !from.IsSigner || !to.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if err := allocate(to, a.Space); err != nil {
		return err
	}
	if err := transfer(from, to, a.Lamports); err != nil {
		return err
	}
	to.Owner = a.Owner
	return nil
}

func (n *Native) execTransfer(ctx drivers.Context, a *nty.Transfer) error {
	iter := drivers.NewAccountIter(ctx.Accounts())
	from, err := iter.Next()
	if err != nil {
		return err
	}
	to, err := iter.Next()
	if err != nil {
		return err
	}
	if !from.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	return transfer(from, to, a.Lamports)
}

func (n *Native) execAllocate(ctx drivers.Context, a *nty.Allocate) error {
	acc, err := drivers.NewAccountIter(ctx.Accounts()).Next()
	if err != nil {
		return err
	}
	if !acc.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	return allocate(acc, a.Space)
}

func (n *Native) execAssign(ctx drivers.Context, a *nty.Assign) error {
	acc, err := drivers.NewAccountIter(ctx.Accounts()).Next()
	if err != nil {
		return err
	}
	if !acc.IsSigner {
		return types.ErrMissingRequiredSignature
	}
	if acc.Owner == a.Owner {
		return nil
	}
	if acc.Owner != types.NativeProgramID {
		return types.ErrAccountAlreadyInitialized
	}
	acc.Owner = a.Owner
	return nil
}
