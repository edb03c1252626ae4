// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"math"
	"testing"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/common/db"
	"github.com/33cn/roulette/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr1 = address.ExecAddress("user1")
	addr2 = address.ExecAddress("user2")
)

func GenerAccDb() *DB {
	stroedb, _ := db.NewGoMemDB("gomemdb", "test", 128)
	return NewAccountDB(stroedb)
}

func TestLoadEmptyAccount(t *testing.T) {
	accDB := GenerAccDb()
	acc := accDB.LoadAccount(addr1)
	assert.Equal(t, addr1, acc.Addr)
	assert.Equal(t, types.NativeProgramID, acc.Owner)
	assert.True(t, acc.IsEmpty())
}

func TestSaveLoadAccount(t *testing.T) {
	accDB := GenerAccDb()
	acc := &types.Account{Addr: addr1, Lamports: 1000, Owner: types.TokenProgramID, Data: []byte{1, 2, 3}}
	accDB.SaveAccount(acc)
	assert.Equal(t, acc, accDB.LoadAccount(addr1))

	accs := accDB.LoadAccounts([]string{addr1, addr2})
	require.Len(t, accs, 2)
	assert.Equal(t, uint64(1000), accs[0].Lamports)
	assert.True(t, accs[1].IsEmpty())

	kv := accDB.GetKVSet(acc)
	require.Len(t, kv, 1)
	assert.Equal(t, []byte(KeyPrefix+addr1), kv[0].Key)
}

func TestGenesisInit(t *testing.T) {
	accDB := GenerAccDb()
	receipt, err := accDB.GenesisInit(addr1, 500)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	require.Len(t, receipt.KV, 1)

	_, err = accDB.GenesisInit(addr1, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), accDB.LoadAccount(addr1).Lamports)

	_, err = accDB.GenesisInit(addr1, math.MaxUint64)
	assert.Equal(t, types.ErrNumericalOverflow, err)
	assert.Equal(t, uint64(1000), accDB.LoadAccount(addr1).Lamports)
}
