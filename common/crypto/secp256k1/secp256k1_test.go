// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secp256k1

import (
	"testing"

	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/common/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	c, err := crypto.New(Name)
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)

	msg := []byte("place guesses")
	sig := priv.Sign(msg)
	assert.False(t, sig.IsZero())
	assert.True(t, priv.PubKey().VerifyBytes(msg, sig))
	assert.False(t, priv.PubKey().VerifyBytes([]byte("spin"), sig))

	sig2, err := c.SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, sig.Equals(sig2))

	pub, err := c.PubKeyFromBytes(priv.PubKey().Bytes())
	require.NoError(t, err)
	assert.True(t, pub.Equals(priv.PubKey()))
	assert.True(t, pub.VerifyBytes(msg, sig2))
}

func TestPrivKeyFromBytes(t *testing.T) {
	c, err := crypto.New(Name)
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)

	priv2, err := c.PrivKeyFromBytes(priv.Bytes())
	require.NoError(t, err)
	assert.True(t, priv.Equals(priv2))

	_, err = c.PrivKeyFromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
	_, err = c.PubKeyFromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestWIF(t *testing.T) {
	priv, err := Driver{}.GenKey()
	require.NoError(t, err)
	wif, err := EncodeWIF(priv)
	require.NoError(t, err)

	back, err := DecodeWIF(wif)
	require.NoError(t, err)
	assert.True(t, priv.Equals(back))

	_, err = DecodeWIF("not-a-wif")
	assert.Error(t, err)
}

func TestPubKeyToAddress(t *testing.T) {
	priv, err := Driver{}.GenKey()
	require.NoError(t, err)
	addr := PubKeyToAddress(priv.PubKey())
	assert.NoError(t, address.CheckAddress(addr))
	assert.True(t, address.IsOnCurve(priv.PubKey().Bytes()[1:]))
}

func TestUnknownDriver(t *testing.T) {
	_, err := crypto.New("sm2")
	assert.ErrorIs(t, err, crypto.ErrUnknownDriver)
}
