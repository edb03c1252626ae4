// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"sort"

	"github.com/33cn/roulette/common/crypto"
	"github.com/33cn/roulette/common/crypto/secp256k1"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// KeyEntry keystore 中的一把私钥
type KeyEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Addr  string `json:"addr"`
	WIF   string `json:"wif"`
}

// Keystore 保存在 json 文件里的私钥, 只用于本地账本
type Keystore struct {
	path    string
	Entries []*KeyEntry `json:"keys"`
}

// LoadKeystore 文件不存在时返回空的 keystore
func LoadKeystore(path string) (*Keystore, error) {
	ks := &Keystore{path: path}
	if !util.CheckFileIsExist(path) {
		return ks, nil
	}
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read keystore %s", path)
	}
	if err := json.Unmarshal(data, ks); err != nil {
		return nil, errors.Wrapf(err, "decode keystore %s", path)
	}
	return ks, nil
}

// Save 写回文件
func (ks *Keystore) Save() error {
	data, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFile(ks.path, data, 0600)
}

// Add 加入私钥, label 不能重复
func (ks *Keystore) Add(label string, priv crypto.PrivKey) (*KeyEntry, error) {
	if label != "" {
		if _, err := ks.find(label); err == nil {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "label %s exists", label)
		}
	}
	wif, err := secp256k1.EncodeWIF(priv)
	if err != nil {
		return nil, err
	}
	entry := &KeyEntry{
		ID:    uuid.New().String(),
		Label: label,
		Addr:  secp256k1.PubKeyToAddress(priv.PubKey()),
		WIF:   wif,
	}
	ks.Entries = append(ks.Entries, entry)
	return entry, nil
}

func (ks *Keystore) find(name string) (*KeyEntry, error) {
	for _, e := range ks.Entries {
		if e.Label == name || e.Addr == name || e.ID == name {
			return e, nil
		}
	}
	return nil, errors.Wrapf(types.ErrNotFound, "key %s", name)
}

// Get 按 label, 地址或者 id 取私钥
func (ks *Keystore) Get(name string) (crypto.PrivKey, error) {
	e, err := ks.find(name)
	if err != nil {
		return nil, err
	}
	return secp256k1.DecodeWIF(e.WIF)
}

// Resolve name 是 keystore 中的 key 时返回它的地址, 否则原样返回
func (ks *Keystore) Resolve(name string) string {
	if e, err := ks.find(name); err == nil {
		return e.Addr
	}
	return name
}

// List 按 label 排序, 不包含私钥
func (ks *Keystore) List() []*KeyEntry {
	out := make([]*KeyEntry, 0, len(ks.Entries))
	for _, e := range ks.Entries {
		out = append(out, &KeyEntry{ID: e.ID, Label: e.Label, Addr: e.Addr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
