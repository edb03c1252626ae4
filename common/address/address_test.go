// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyToAddress(t *testing.T) {
	pubkey := "024a17b0c6eb3143839482faa7e917c9b90a8cfe5008dff748789b8cea1a3d08d5"
	b, err := hex.DecodeString(pubkey)
	require.NoError(t, err)
	addr := PubKeyToAddress(b)
	require.NoError(t, CheckAddress(addr.String()))

	parsed, err := NewAddrFromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr.Hash160, parsed.Hash160)
}

func TestCheckAddress(t *testing.T) {
	addr := ExecAddress("roulette")
	assert.NoError(t, CheckAddress(addr))
	assert.Error(t, CheckAddress("1abc"))
	assert.Error(t, CheckAddress(""))

	// flip the last character to break the checksum
	bad := []byte(addr)
	if bad[len(bad)-1] == '1' {
		bad[len(bad)-1] = '2'
	} else {
		bad[len(bad)-1] = '1'
	}
	assert.Error(t, CheckAddress(string(bad)))
}

func TestToBytesRoundTrip(t *testing.T) {
	addr := ExecAddress("token")
	b, err := ToBytes(addr)
	require.NoError(t, err)
	require.Len(t, b, Size)
	back, err := FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, addr, back)

	zero, err := ToBytes("")
	require.NoError(t, err)
	empty, err := FromBytes(zero)
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	_, err = FromBytes(b[:10])
	assert.Equal(t, ErrAddressLength, err)
}

// 包级变量在 init 之前求值
var initTimeAddr = ExecAddress("native")
var initTimeCheck = CheckAddress(initTimeAddr)

func TestExecAddressAtPackageInit(t *testing.T) {
	require.NoError(t, initTimeCheck)
	assert.Equal(t, ExecAddress("native"), initTimeAddr)
	assert.Equal(t, ExecAddress("roulette"), testProgram)
}

func TestExecAddressStable(t *testing.T) {
	assert.Equal(t, ExecAddress("roulette"), ExecAddress("roulette"))
	assert.NotEqual(t, ExecAddress("roulette"), ExecAddress("token"))
}
