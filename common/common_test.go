// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "0x0a0b", ToHex([]byte{10, 11}))

	b, err := FromHex("0x0a0b")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 11}, b)

	b, err = FromHex("a0b")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 11}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)
}

func TestSha256Concat(t *testing.T) {
	whole := Sha256([]byte("honeypotvault"))
	parts := Sha256Concat([]byte("honeypot"), []byte("vault"))
	assert.Equal(t, whole, parts[:])
}

func TestRimp160AfterSha256(t *testing.T) {
	h := Rimp160AfterSha256([]byte("roulette"))
	assert.Len(t, h, 20)
	assert.NotEqual(t, h, Rimp160AfterSha256([]byte("roulettf")))
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}
