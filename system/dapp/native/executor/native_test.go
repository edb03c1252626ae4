// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor_test

import (
	"testing"

	"github.com/33cn/roulette/common/crypto"
	_ "github.com/33cn/roulette/system"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util/testnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) *testnode.RouletteMock {
	mock, err := testnode.NewWithConfig(testnode.GetDefaultConfig())
	require.Nil(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTransfer(t *testing.T) {
	mock := newMock(t)
	from, priv, err := mock.NewFundedKey()
	require.Nil(t, err)
	to, toPriv := mock.Genaddress()

	_, err = mock.SendTx([]crypto.PrivKey{priv}, nty.NewTransfer(from, to, 100))
	require.Nil(t, err)
	assert.Equal(t, uint64(testnode.DefaultFunds-100), mock.Account(from).Lamports)
	assert.Equal(t, uint64(100), mock.Account(to).Lamports)

	_, err = mock.SendTx([]crypto.PrivKey{toPriv}, nty.NewTransfer(to, from, 101))
	assert.Equal(t, types.ErrInsufficientFunds, err)
	assert.Equal(t, uint64(100), mock.Account(to).Lamports)

	v, err := mock.Query(nty.NativeX, "GetAccount", []byte(to))
	require.Nil(t, err)
	assert.Equal(t, uint64(100), v.(*types.Account).Lamports)
	_, err = mock.Query(nty.NativeX, "GetAccount", []byte("xx"))
	assert.Equal(t, types.ErrInvalidArgument, err)
}

func TestCreateAccount(t *testing.T) {
	mock := newMock(t)
	payer, priv, err := mock.NewFundedKey()
	require.Nil(t, err)
	addr, newPriv := mock.Genaddress()
	lamports := mock.Rent().MinimumBalance(32)

	signers := []crypto.PrivKey{priv, newPriv}
	_, err = mock.SendTx(signers, nty.NewCreateAccount(payer, addr, lamports, 32, types.OracleProgramID))
	require.Nil(t, err)
	acc := mock.Account(addr)
	assert.Equal(t, types.OracleProgramID, acc.Owner)
	assert.Equal(t, lamports, acc.Lamports)
	assert.Len(t, acc.Data, 32)

	_, err = mock.SendTx(signers, nty.NewCreateAccount(payer, addr, lamports, 32, types.OracleProgramID))
	assert.Equal(t, types.ErrAccountAlreadyInitialized, err)
}

func TestAllocateAndAssign(t *testing.T) {
	mock := newMock(t)
	addr, priv, err := mock.NewFundedKey()
	require.Nil(t, err)
	signers := []crypto.PrivKey{priv}

	_, err = mock.SendTx(signers, nty.NewAllocate(addr, types.MaxAccountDataSize+1))
	assert.Equal(t, types.ErrInvalidArgument, err)

	_, err = mock.SendTx(signers, nty.NewAllocate(addr, 16), nty.NewAssign(addr, types.TokenProgramID))
	require.Nil(t, err)
	acc := mock.Account(addr)
	assert.Equal(t, types.TokenProgramID, acc.Owner)
	assert.Len(t, acc.Data, 16)

	_, err = mock.SendTx(signers, nty.NewAllocate(addr, 16))
	assert.Equal(t, types.ErrAccountAlreadyInitialized, err)
}

func TestDecodeAction(t *testing.T) {
	data, err := nty.EncodeAction(&nty.Transfer{Lamports: 7})
	require.Nil(t, err)
	a, err := nty.DecodeAction(data)
	require.Nil(t, err)
	assert.Equal(t, &nty.Transfer{Lamports: 7}, a)

	_, err = nty.DecodeAction(append(data, 0))
	assert.Equal(t, types.ErrInvalidInstructionData, err)
	_, err = nty.DecodeAction([]byte{9})
	assert.Equal(t, types.ErrInvalidInstructionData, err)
}
