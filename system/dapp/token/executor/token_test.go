// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor_test

import (
	"testing"

	"github.com/33cn/roulette/common/crypto"
	_ "github.com/33cn/roulette/system"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util/testnode"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenSuite struct {
	mock      *testnode.RouletteMock
	authority crypto.PrivKey
	alice     string
	alicePriv crypto.PrivKey
	bob       string
	mint      string
	aliceATA  string
	bobATA    string
}

func newTokenSuite(t *testing.T) *tokenSuite {
	mock, err := testnode.NewWithConfig(testnode.GetDefaultConfig())
	require.Nil(t, err)
	t.Cleanup(mock.Close)

	s := &tokenSuite{mock: mock}
	_, s.authority, err = mock.NewFundedKey()
	require.Nil(t, err)
	s.alice, s.alicePriv, err = mock.NewFundedKey()
	require.Nil(t, err)
	s.bob, _ = mock.Genaddress()

	s.mint, err = mock.CreateMint(s.authority, 2)
	require.Nil(t, err)
	s.aliceATA, err = mock.CreateATA(s.alicePriv, s.alice, s.mint)
	require.Nil(t, err)
	// 任何人都可以替别人创建关联账户
	s.bobATA, err = mock.CreateATA(s.alicePriv, s.bob, s.mint)
	require.Nil(t, err)
	return s
}

func TestMintTo(t *testing.T) {
	s := newTokenSuite(t)
	require.Nil(t, s.mock.MintTo(s.authority, s.mint, s.aliceATA, 500))

	v, err := s.mock.Query(tokenty.TokenX, "GetMint", []byte(s.mint))
	require.Nil(t, err)
	mint := v.(*tokenty.Mint)
	assert.True(t, mint.IsInitialized)
	assert.Equal(t, uint8(2), mint.Decimals)
	assert.Equal(t, uint64(500), mint.Supply)
	assert.Equal(t, testnode.Addr(s.authority), mint.MintAuthority)

	v, err = s.mock.Query(tokenty.TokenX, "GetAccount", []byte(s.aliceATA))
	require.Nil(t, err)
	acc := v.(*tokenty.Account)
	assert.Equal(t, s.alice, acc.Owner)
	assert.Equal(t, s.mint, acc.Mint)
	assert.Equal(t, uint64(500), acc.Amount)

	_, err = s.mock.SendTx([]crypto.PrivKey{s.alicePriv}, tokenty.NewMintTo(s.mint, s.aliceATA, s.alice, 1))
	assert.Equal(t, types.ErrInvalidMintAuthority, err)
}

func TestTransfer(t *testing.T) {
	s := newTokenSuite(t)
	require.Nil(t, s.mock.MintTo(s.authority, s.mint, s.aliceATA, 500))
	require.Nil(t, s.mock.TokenTransfer(s.alicePriv, s.aliceATA, s.bobATA, 200))

	balance, err := s.mock.TokenBalance(s.aliceATA)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), balance)
	balance, err = s.mock.TokenBalance(s.bobATA)
	require.Nil(t, err)
	assert.Equal(t, uint64(200), balance)

	err = s.mock.TokenTransfer(s.alicePriv, s.aliceATA, s.bobATA, 301)
	assert.Equal(t, types.ErrInsufficientFunds, errors.Cause(err))

	// alice 不能动 bob 的余额
	err = s.mock.TokenTransfer(s.alicePriv, s.bobATA, s.aliceATA, 1)
	assert.Equal(t, tokenty.ErrTokenOwnerMismatch, errors.Cause(err))
}

func TestMintMismatch(t *testing.T) {
	s := newTokenSuite(t)
	other, err := s.mock.CreateMint(s.authority, 0)
	require.Nil(t, err)
	otherATA, err := s.mock.CreateATA(s.alicePriv, s.alice, other)
	require.Nil(t, err)
	require.Nil(t, s.mock.MintTo(s.authority, other, otherATA, 10))

	err = s.mock.TokenTransfer(s.alicePriv, otherATA, s.bobATA, 1)
	assert.Equal(t, tokenty.ErrTokenMintMismatch, errors.Cause(err))
	err = s.mock.MintTo(s.authority, s.mint, otherATA, 1)
	assert.Equal(t, tokenty.ErrTokenMintMismatch, errors.Cause(err))
}

func TestAssociatedAccountTwice(t *testing.T) {
	s := newTokenSuite(t)
	_, err := s.mock.CreateATA(s.alicePriv, s.alice, s.mint)
	assert.NotNil(t, err)
	addr, _, err := tokenty.FindAssociatedAddress(s.alice, s.mint)
	require.Nil(t, err)
	assert.Equal(t, s.aliceATA, addr)
}
