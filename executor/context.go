// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// frame 一次程序调用, 实现 dapp.Context
type frame struct {
	env      *execEnv
	program  string
	accounts []*types.AccountInfo
	pre      map[string]*types.Account
	depth    int
}

func newFrame(env *execEnv, program string, accounts []*types.AccountInfo, depth int) *frame {
	f := &frame{env: env, program: program, accounts: accounts, depth: depth}
	f.refreshPre()
	return f
}

func (f *frame) refreshPre() {
	f.pre = make(map[string]*types.Account, len(f.accounts))
	for _, ai := range f.accounts {
		if _, ok := f.pre[ai.Addr]; !ok {
			f.pre[ai.Addr] = ai.Account.Clone()
		}
	}
}

func (f *frame) run(data []byte) error {
	driver, err := f.env.loadDriver(f.program)
	if err != nil {
		return err
	}
	f.env.stack = append(f.env.stack, f.program)
	defer func() {
		f.env.stack = f.env.stack[:len(f.env.stack)-1]
	}()
	if err := driver.Exec(f, data); err != nil {
		return err
	}
	return f.verify()
}

// find 第一个地址相同的账户
func (f *frame) find(addr string) *types.AccountInfo {
	for _, ai := range f.accounts {
		if ai.Addr == addr {
			return ai
		}
	}
	return nil
}

// privileges 同一个地址出现多次时取权限的并集
func (f *frame) privileges(addr string) (signer, writable bool) {
	for _, ai := range f.accounts {
		if ai.Addr == addr {
			signer = signer || ai.IsSigner
			writable = writable || ai.IsWritable
		}
	}
	return signer, writable
}

// verify 检查本次调用对账户的修改是否合法:
// 只读账户不能修改, 只有 owner 程序可以修改数据和扣减余额, lamports 总量不变
func (f *frame) verify() error {
	var preHi, preLo, postHi, postLo uint64
	seen := make(map[string]bool, len(f.accounts))
	for _, ai := range f.accounts {
		if seen[ai.Addr] {
			continue
		}
		seen[ai.Addr] = true
		pre := f.pre[ai.Addr]
		_, writable := f.privileges(ai.Addr)
		if err := verifyAccount(f.program, pre, ai.Account, writable); err != nil {
			elog.Debug("verify", "program", f.program, "addr", ai.Addr, "err", err)
			return err
		}
		preHi, preLo = add128(preHi, preLo, pre.Lamports)
		postHi, postLo = add128(postHi, postLo, ai.Lamports)
	}
	if preHi != postHi || preLo != postLo {
		return types.ErrUnbalancedInstruction
	}
	return nil
}

func add128(hi, lo, v uint64) (uint64, uint64) {
	lo, carry := bits.Add64(lo, v, 0)
	return hi + carry, lo
}

func verifyAccount(program string, pre, post *types.Account, writable bool) error {
	dataChanged := !bytes.Equal(pre.Data, post.Data)
	changed := dataChanged || pre.Lamports != post.Lamports || pre.Owner != post.Owner || pre.Executable != post.Executable
	if !changed {
		return nil
	}
	if !writable {
		return types.ErrReadonlyAccountModified
	}
	if pre.Executable != post.Executable {
		return types.ErrExternalAccountDataModified
	}
	if pre.Owner != post.Owner {
		if pre.Owner != program || !isZero(post.Data) {
			return types.ErrExternalAccountDataModified
		}
	}
	if dataChanged && pre.Owner != program {
		return types.ErrExternalAccountDataModified
	}
	if post.Lamports < pre.Lamports && pre.Owner != program {
		return types.ErrExternalAccountLamportSpend
	}
	return nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// ProgramID 当前程序
func (f *frame) ProgramID() string {
	return f.program
}

// Accounts 指令账户
func (f *frame) Accounts() []*types.AccountInfo {
	return f.accounts
}

// Height 当前步数
func (f *frame) Height() int64 {
	return f.env.height
}

// BlockTime 当前时间
func (f *frame) BlockTime() int64 {
	return f.env.blocktime
}

// InstructionIndex 顶层指令序号
func (f *frame) InstructionIndex() int {
	return f.env.ixIndex
}

// Instructions 交易中的全部指令
func (f *frame) Instructions() []*types.Instruction {
	return f.env.tx.Instructions
}

// Config 配置
func (f *frame) Config() *types.Config {
	return f.env.exec.cfg
}

// Log 程序日志
func (f *frame) Log(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	f.env.logs = append(f.env.logs, &types.ReceiptLog{Ty: types.TyLogProgram, Log: []byte(msg)})
	elog.Debug("program log", "program", f.program, "msg", msg)
}

// AddLog 程序自定义类型的日志
func (f *frame) AddLog(ty int32, data []byte) {
	f.env.logs = append(f.env.logs, &types.ReceiptLog{Ty: ty, Log: data})
}

func (f *frame) inStack(program string) bool {
	for _, p := range f.env.stack {
		if p == program {
			return true
		}
	}
	return false
}

// Invoke 跨程序调用. 被调用方只能使用调用方已有的账户, 权限不能提升;
// signerSeeds 派生出的地址 (以调用方为程序) 在被调用方视为已签名.
func (f *frame) Invoke(ix *types.Instruction, signerSeeds ...[][]byte) error {
	if f.depth+1 > types.MaxCallDepth {
		return types.ErrCallDepthExceeded
	}
	if f.find(ix.ProgramID) == nil {
		return types.ErrNotEnoughAccountKeys
	}
	if ix.ProgramID != f.program && f.inStack(ix.ProgramID) {
		return types.ErrReentrancyNotAllowed
	}
	pdaSigners := make(map[string]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		addr, err := address.CreateProgramAddress(seeds, f.program)
		if err != nil {
			return types.ErrInvalidSeeds
		}
		pdaSigners[addr] = true
	}
	infos := make([]*types.AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		ai := f.find(meta.Addr)
		if ai == nil {
			return types.ErrNotEnoughAccountKeys
		}
		signer, writable := f.privileges(meta.Addr)
		if meta.IsSigner && !signer && !pdaSigners[meta.Addr] {
			elog.Debug("Invoke", "program", ix.ProgramID, "signer", meta.Addr, "err", types.ErrPrivilegeEscalation)
			return types.ErrPrivilegeEscalation
		}
		if meta.IsWritable && !writable {
			elog.Debug("Invoke", "program", ix.ProgramID, "writable", meta.Addr, "err", types.ErrPrivilegeEscalation)
			return types.ErrPrivilegeEscalation
		}
		infos = append(infos, &types.AccountInfo{Account: ai.Account, IsSigner: meta.IsSigner, IsWritable: meta.IsWritable})
	}
	// 调用之前的修改记在调用方名下
	if err := f.verify(); err != nil {
		return err
	}
	f.refreshPre()
	callee := newFrame(f.env, ix.ProgramID, infos, f.depth+1)
	if err := callee.run(ix.Data); err != nil {
		return err
	}
	f.refreshPre()
	return nil
}
