// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/roulette/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel("nonsense"))
}

func TestSetFileLog(t *testing.T) {
	dir, err := os.MkdirTemp("", "roulettelog")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cfg := &types.Log{LogFile: filepath.Join(dir, "roulette.log"), Loglevel: "info", MaxFileSize: 1}
	SetFileLog(cfg)
	defer SetLogLevel("error")
	assert.Equal(t, log15.LvlError.String(), cfg.LogConsoleLevel)

	New("module", "logtest").Info("hello", "k", 1)
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "module=logtest")
}
