// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"math"
	"testing"

	"github.com/33cn/roulette/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "123.45", FormatAmount(12345, 2))
	assert.Equal(t, "0.05", FormatAmount(5, 2))
	assert.Equal(t, "500", FormatAmount(500, 0))
	assert.Equal(t, "18446744073709551615", FormatAmount(math.MaxUint64, 0))
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("1.5", 2)
	require.Nil(t, err)
	assert.Equal(t, uint64(150), v)

	v, err = ParseAmount(FormatAmount(12345, 2), 2)
	require.Nil(t, err)
	assert.Equal(t, uint64(12345), v)

	_, err = ParseAmount("1.555", 2)
	assert.Equal(t, types.ErrInvalidArgument, errors.Cause(err))
	_, err = ParseAmount("-1", 0)
	assert.Equal(t, types.ErrInvalidArgument, errors.Cause(err))
	_, err = ParseAmount("abc", 0)
	assert.Equal(t, types.ErrInvalidArgument, errors.Cause(err))
	_, err = ParseAmount("18446744073709551616", 0)
	assert.Equal(t, types.ErrNumericalOverflow, errors.Cause(err))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := dir + "/sub/keys.json"
	require.Nil(t, WriteFile(file, []byte("abc"), 0600))
	assert.True(t, CheckFileIsExist(file))
	data, err := ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, []byte("abc"), data)
}
