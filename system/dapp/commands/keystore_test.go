// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"path/filepath"
	"testing"

	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), keystoreFile)
	ks, err := LoadKeystore(path)
	require.Nil(t, err)
	assert.Len(t, ks.List(), 0)

	addr, priv := util.Genaddress()
	entry, err := ks.Add("house", priv)
	require.Nil(t, err)
	assert.Equal(t, addr, entry.Addr)
	assert.Len(t, entry.ID, 36)
	_, err = ks.Add("house", priv)
	assert.Equal(t, types.ErrInvalidArgument, errors.Cause(err))
	require.Nil(t, ks.Save())

	ks, err = LoadKeystore(path)
	require.Nil(t, err)
	got, err := ks.Get("house")
	require.Nil(t, err)
	assert.True(t, priv.Equals(got))
	got, err = ks.Get(addr)
	require.Nil(t, err)
	assert.True(t, priv.Equals(got))

	assert.Equal(t, addr, ks.Resolve("house"))
	assert.Equal(t, "other", ks.Resolve("other"))
	_, err = ks.Get("other")
	assert.Equal(t, types.ErrNotFound, errors.Cause(err))

	list := ks.List()
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].WIF)
}
