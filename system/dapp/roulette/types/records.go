// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// Version 记录的类型和版本, 写在每条记录的第一个字节
type Version uint8

// 记录版本
const (
	VersionUninitialized Version = iota
	VersionTombstone
	VersionRNGV1
	VersionHoneypotV1
	VersionLockedGuessV1
)

// NumGuessSlots 押注表固定 64 格, 只使用前 NumGuesses 格
const NumGuessSlots = 64

// 记录长度
const (
	RNGLen         = 1 + 8 + 8
	HoneypotLen    = 1 + 1 + 1 + address.Size + address.Size + 8 + 8 + 8
	LockedGuessLen = 1 + 1 + address.Size + address.Size + 8 + 1 + 8 + 8*NumGuessSlots
)

// RNG 请求方的随机数缓存
type RNG struct {
	Version Version
	Value   uint64
	Slot    uint64
}

// Encode 定长编码
func (r *RNG) Encode() []byte {
	enc := types.NewEncoder(RNGLen)
	enc.U8(uint8(r.Version))
	enc.U64(r.Value)
	enc.U64(r.Slot)
	return enc.Result()
}

// DecodeRNG 全 0 数据解码为未初始化的记录
func DecodeRNG(b []byte) (*RNG, error) {
	if len(b) != RNGLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	r := &RNG{Version: Version(dec.U8()), Value: dec.U64(), Slot: dec.U64()}
	if dec.Err() != nil || r.Version > VersionLockedGuessV1 {
		return nil, types.ErrInvalidAccountData
	}
	return r, nil
}

// Honeypot 奖池配置
type Honeypot struct {
	Version         Version
	HoneypotBump    uint8
	VaultBump       uint8
	Owner           string
	Mint            string
	TickSize        uint64
	MaxAmount       uint64
	MinimumBankSize uint64
}

// Encode 定长编码
func (h *Honeypot) Encode() []byte {
	enc := types.NewEncoder(HoneypotLen)
	enc.U8(uint8(h.Version))
	enc.U8(h.HoneypotBump)
	enc.U8(h.VaultBump)
	enc.Address(h.Owner)
	enc.Address(h.Mint)
	enc.U64(h.TickSize)
	enc.U64(h.MaxAmount)
	enc.U64(h.MinimumBankSize)
	return enc.Result()
}

// DecodeHoneypot decode
func DecodeHoneypot(b []byte) (*Honeypot, error) {
	if len(b) != HoneypotLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	h := &Honeypot{
		Version:         Version(dec.U8()),
		HoneypotBump:    dec.U8(),
		VaultBump:       dec.U8(),
		Owner:           dec.Address(),
		Mint:            dec.Address(),
		TickSize:        dec.U64(),
		MaxAmount:       dec.U64(),
		MinimumBankSize: dec.U64(),
	}
	if dec.Err() != nil || h.Version > VersionLockedGuessV1 {
		return nil, types.ErrInvalidAccountData
	}
	return h, nil
}

// LockedGuess 玩家在某个奖池上的押注记录, Active 为 true 时押注已经锁定
type LockedGuess struct {
	Version    Version
	Bump       uint8
	Owner      string
	Vault      string
	Slot       uint64
	Active     bool
	ActiveSize uint64
	Guesses    [NumGuessSlots]uint64
}

// Encode 定长编码, 押注表总是完整的 64 格
func (g *LockedGuess) Encode() []byte {
	enc := types.NewEncoder(LockedGuessLen)
	enc.U8(uint8(g.Version))
	enc.U8(g.Bump)
	enc.Address(g.Owner)
	enc.Address(g.Vault)
	enc.U64(g.Slot)
	enc.Bool(g.Active)
	enc.U64(g.ActiveSize)
	for _, v := range g.Guesses {
		enc.U64(v)
	}
	return enc.Result()
}

// DecodeLockedGuess decode
func DecodeLockedGuess(b []byte) (*LockedGuess, error) {
	if len(b) != LockedGuessLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	g := &LockedGuess{
		Version:    Version(dec.U8()),
		Bump:       dec.U8(),
		Owner:      dec.Address(),
		Vault:      dec.Address(),
		Slot:       dec.U64(),
		Active:     dec.Bool(),
		ActiveSize: dec.U64(),
	}
	for i := range g.Guesses {
		g.Guesses[i] = dec.U64()
	}
	if dec.Err() != nil || g.Version > VersionLockedGuessV1 {
		return nil, types.ErrInvalidAccountData
	}
	return g, nil
}

// Reset 回到空闲状态
func (g *LockedGuess) Reset() {
	g.Active = false
	g.ActiveSize = 0
	g.Guesses = [NumGuessSlots]uint64{}
}
