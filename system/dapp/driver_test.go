// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"errors"
	"testing"

	"github.com/33cn/roulette/common/db"
	"github.com/33cn/roulette/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	DriverBase
}

func newEcho() Driver {
	e := &echo{}
	e.SetChild(e)
	return e
}

func (e *echo) GetDriverName() string { return "echo-test" }

func (e *echo) Exec(ctx Context, data []byte) error { return nil }

func (e *echo) Query_Echo(params []byte) (interface{}, error) {
	return string(params), nil
}

func (e *echo) Query_Fail(params []byte) (interface{}, error) {
	return nil, errors.New("fail")
}

func (e *echo) Query_BadSignature(params string) (interface{}, error) {
	return params, nil
}

func (e *echo) Query_Panic(params []byte) (interface{}, error) {
	panic("boom")
}

func TestRegisterAndLoad(t *testing.T) {
	Register("echo-test", newEcho)
	assert.Panics(t, func() { Register("echo-test", newEcho) })
	assert.Panics(t, func() { Register("nil-test", nil) })

	d, err := LoadDriver("echo-test")
	require.NoError(t, err)
	assert.Equal(t, "echo-test", d.GetName())

	d2, err := LoadDriverByAddress(ExecAddress("echo-test"))
	require.NoError(t, err)
	assert.Equal(t, "echo-test", d2.GetDriverName())
	assert.True(t, IsDriverAddress(ExecAddress("echo-test")))
	assert.False(t, IsDriverAddress(ExecAddress("missing")))
	assert.Contains(t, DriverNames(), "echo-test")

	_, err = LoadDriver("missing")
	assert.Equal(t, types.ErrUnknownProgram, err)
	_, err = LoadDriverByAddress(ExecAddress("missing"))
	assert.Equal(t, types.ErrUnknownProgram, err)
}

func TestQueryReflection(t *testing.T) {
	d := newEcho()
	ret, err := d.Query("Echo", []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", ret)

	_, err = d.Query("Fail", nil)
	assert.EqualError(t, err, "fail")

	_, err = d.Query("Missing", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
	_, err = d.Query("BadSignature", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
	_, err = d.Query("Panic", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestDriverBase(t *testing.T) {
	d := newEcho().(*echo)
	d.SetEnv(10, 1000)
	assert.Equal(t, int64(10), d.GetHeight())
	assert.Equal(t, int64(1000), d.GetBlockTime())

	mem, err := db.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	d.SetLocalDB(mem)
	assert.Equal(t, mem, d.GetLocalDB())

	set, err := d.ExecLocal(nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, set.KV)
}

func TestAccountIter(t *testing.T) {
	a := &types.AccountInfo{Account: &types.Account{Addr: "a"}}
	b := &types.AccountInfo{Account: &types.Account{Addr: "b"}}
	it := NewAccountIter([]*types.AccountInfo{a, b})
	got, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, []*types.AccountInfo{b}, it.Rest())
	_, err = it.Next()
	require.NoError(t, err)
	assert.Nil(t, it.Rest())
	_, err = it.Next()
	assert.Equal(t, types.ErrNotEnoughAccountKeys, err)

	assert.Equal(t, "00000000001200003", HeightIndexStr(12, 3))
}
