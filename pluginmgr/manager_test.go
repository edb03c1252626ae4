// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	var inited []string
	Register(&PluginBase{
		Name:     "zz-test",
		ExecName: "zztest",
		Exec:     func(name string) { inited = append(inited, name) },
		Cmd:      func() *cobra.Command { return &cobra.Command{Use: "zztest"} },
	})
	assert.Panics(t, func() { Register(&PluginBase{Name: "zz-test"}) })
	assert.Panics(t, func() { Register(&PluginBase{}) })
	assert.True(t, HasExec("zztest"))
	assert.False(t, HasExec("nope"))
	assert.Contains(t, Names(), "zz-test")

	InitExec()
	InitExec()
	assert.Equal(t, []string{"zztest"}, inited)

	root := &cobra.Command{Use: "root"}
	AddCmd(root)
	found, _, err := root.Find([]string{"zztest"})
	assert.NoError(t, err)
	assert.Equal(t, "zztest", found.Use)
}
