// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types oracle 程序的记录和指令. feed 由 authority 定期更新, 游戏通过 Sample 读取随机数
package types

import (
	"errors"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// OracleX 程序名称
var OracleX = types.OracleX

// oracle 错误
var (
	ErrStaleEntropy = errors.New("ErrStaleEntropy")
	ErrNoEntropy    = errors.New("ErrNoEntropy")
	ErrTooManyFeeds = errors.New("ErrTooManyFeeds")
)

// FeedLen feed 记录长度
const FeedLen = 1 + address.Size + 8 + 8

// Feed 随机源
type Feed struct {
	IsInitialized bool
	Authority     string
	Value         uint64
	Slot          uint64
}

// Encode 定长编码
func (f *Feed) Encode() []byte {
	enc := types.NewEncoder(FeedLen)
	enc.Bool(f.IsInitialized)
	enc.Address(f.Authority)
	enc.U64(f.Value)
	enc.U64(f.Slot)
	return enc.Result()
}

// DecodeFeed 数据长度必须是 FeedLen
func DecodeFeed(b []byte) (*Feed, error) {
	if len(b) != FeedLen {
		return nil, types.ErrInvalidAccountData
	}
	dec := types.NewDecoder(b)
	f := &Feed{
		IsInitialized: dec.Bool(),
		Authority:     dec.Address(),
		Value:         dec.U64(),
		Slot:          dec.U64(),
	}
	if dec.Err() != nil {
		return nil, types.ErrInvalidAccountData
	}
	return f, nil
}

// 指令编号
const (
	OracleActionCreateFeed = 0
	OracleActionUpdateFeed = 1
)

// Action oracle 指令
type Action interface {
	Ty() uint8
	encode(enc *types.Encoder)
}

// CreateFeed accounts: [feed(w), authority(s)]. feed 账户需要事先分配 FeedLen 字节并交给 oracle
type CreateFeed struct{}

// UpdateFeed accounts: [feed(w), authority(s), clock]
type UpdateFeed struct {
	Value uint64
}

// Ty action type
func (a *CreateFeed) Ty() uint8 { return OracleActionCreateFeed }

// Ty action type
func (a *UpdateFeed) Ty() uint8 { return OracleActionUpdateFeed }

func (a *CreateFeed) encode(enc *types.Encoder) {}

func (a *UpdateFeed) encode(enc *types.Encoder) {
	enc.U64(a.Value)
}

// EncodeAction encode
func EncodeAction(a Action) []byte {
	enc := types.NewEncoder(9)
	enc.U8(a.Ty())
	a.encode(enc)
	return enc.Result()
}

// DecodeAction decode
func DecodeAction(data []byte) (Action, error) {
	dec := types.NewDecoder(data)
	var a Action
	switch dec.U8() {
	case OracleActionCreateFeed:
		a = &CreateFeed{}
	case OracleActionUpdateFeed:
		a = &UpdateFeed{Value: dec.U64()}
	default:
		return nil, types.ErrInvalidInstructionData
	}
	if dec.Err() != nil || dec.Remaining() != 0 {
		return nil, types.ErrInvalidInstructionData
	}
	return a, nil
}

// NewCreateFeed 构造 CreateFeed
func NewCreateFeed(feed, authority string) *types.Instruction {
	return types.NewInstruction(types.OracleProgramID, EncodeAction(&CreateFeed{}),
		types.NewAccountMeta(feed, false), types.NewReadonlyAccountMeta(authority, true))
}

// NewUpdateFeed 构造 UpdateFeed
func NewUpdateFeed(feed, authority string, value uint64) *types.Instruction {
	return types.NewInstruction(types.OracleProgramID, EncodeAction(&UpdateFeed{Value: value}),
		types.NewAccountMeta(feed, false), types.NewReadonlyAccountMeta(authority, true),
		types.NewReadonlyAccountMeta(types.SysvarClockID, false))
}

// SampleMetas Sample 需要的账户: [clock, feed...]
func SampleMetas(feeds ...string) []types.AccountMeta {
	metas := []types.AccountMeta{types.NewReadonlyAccountMeta(types.SysvarClockID, false)}
	for _, f := range feeds {
		metas = append(metas, types.NewReadonlyAccountMeta(f, false))
	}
	return metas
}
