// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledIgnored(t *testing.T) {
	Reset()
	Enable(false)
	defer Enable(false)
	Inc(RouletteSpins, 1)
	Mark(TxOk, 1)
	assert.Empty(t, Snapshot())
}

func TestSnapshot(t *testing.T) {
	Reset()
	Enable(true)
	defer Enable(false)
	Inc(RouletteWagered, 100)
	Inc(RouletteWagered, 50)
	Mark(TxOk, 2)
	UpdateSince(TxTime, time.Now().Add(-time.Millisecond))

	snap := Snapshot()
	assert.Equal(t, int64(150), snap[RouletteWagered])
	assert.Equal(t, int64(2), snap[TxOk])
	timer, ok := snap[TxTime].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(1), timer["count"])
}
