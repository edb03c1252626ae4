// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/33cn/roulette/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockInfo(slot uint64) *types.AccountInfo {
	return &types.AccountInfo{Account: &types.Account{
		Addr:  types.SysvarClockID,
		Owner: types.NativeProgramID,
		Data:  (&types.Clock{Slot: slot}).Encode(),
	}}
}

func feedInfo(value, slot uint64) *types.AccountInfo {
	f := &Feed{IsInitialized: true, Value: value, Slot: slot}
	return &types.AccountInfo{Account: &types.Account{Owner: types.OracleProgramID, Data: f.Encode()}}
}

func TestSample(t *testing.T) {
	v1, step, err := Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 9), feedInfo(2, 10)}, 2, 8)
	require.Nil(t, err)
	assert.Equal(t, uint64(10), step)

	v2, _, err := Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 9), feedInfo(2, 10)}, 2, 8)
	require.Nil(t, err)
	assert.Equal(t, v1, v2)

	// 任何一个值或者步数变化, 结果都不同
	v3, _, err := Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 9), feedInfo(3, 10)}, 2, 8)
	require.Nil(t, err)
	assert.NotEqual(t, v1, v3)
	v4, _, err := Sample([]*types.AccountInfo{clockInfo(11), feedInfo(1, 9), feedInfo(2, 10)}, 2, 8)
	require.Nil(t, err)
	assert.NotEqual(t, v1, v4)
}

func TestSampleErrors(t *testing.T) {
	_, _, err := Sample(nil, 2, 8)
	assert.Equal(t, types.ErrNotEnoughAccountKeys, err)

	_, _, err = Sample([]*types.AccountInfo{feedInfo(1, 1)}, 2, 8)
	assert.Equal(t, types.ErrInvalidArgument, err)

	_, _, err = Sample([]*types.AccountInfo{clockInfo(10)}, 2, 8)
	assert.Equal(t, ErrNoEntropy, err)

	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 7)}, 2, 8)
	assert.Equal(t, ErrStaleEntropy, err)

	// 比时钟新的 feed 不算过期
	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 12)}, 0, 8)
	assert.Nil(t, err)

	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 10), feedInfo(2, 10)}, 2, 1)
	assert.Equal(t, ErrTooManyFeeds, err)
	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), feedInfo(1, 10), feedInfo(2, 10)}, 2, 0)
	assert.Nil(t, err)

	wrong := feedInfo(1, 10)
	wrong.Owner = types.TokenProgramID
	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), wrong}, 2, 8)
	assert.Equal(t, types.ErrIncorrectOwner, err)

	empty := &types.AccountInfo{Account: &types.Account{Owner: types.OracleProgramID, Data: make([]byte, FeedLen)}}
	_, _, err = Sample([]*types.AccountInfo{clockInfo(10), empty}, 2, 8)
	assert.Equal(t, types.ErrUninitializedAccount, err)
}

func TestFeedCodec(t *testing.T) {
	f := &Feed{IsInitialized: true, Value: 99, Slot: 3}
	b := f.Encode()
	assert.Len(t, b, FeedLen)
	got, err := DecodeFeed(b)
	require.Nil(t, err)
	assert.Equal(t, f, got)

	_, err = DecodeFeed(b[1:])
	assert.Equal(t, types.ErrInvalidAccountData, err)

	a, err := DecodeAction(EncodeAction(&UpdateFeed{Value: 5}))
	require.Nil(t, err)
	assert.Equal(t, &UpdateFeed{Value: 5}, a)
	_, err = DecodeAction([]byte{OracleActionCreateFeed, 1})
	assert.Equal(t, types.ErrInvalidInstructionData, err)
}
