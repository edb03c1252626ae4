// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Account 账本账户, 余额以 lamports 计, 数据只能由 Owner 程序修改
type Account struct {
	Addr       string
	Lamports   uint64
	Owner      string
	Executable bool
	Data       []byte
}

// Encode 不包含地址, 地址就是存储的 key
func (acc *Account) Encode() []byte {
	enc := NewEncoder(8 + 25 + 1 + 4 + len(acc.Data))
	enc.U64(acc.Lamports)
	enc.Address(acc.Owner)
	enc.Bool(acc.Executable)
	enc.Bytes(acc.Data)
	return enc.Result()
}

// DecodeAccount 解码账户
func DecodeAccount(addr string, b []byte) (*Account, error) {
	dec := NewDecoder(b)
	acc := &Account{Addr: addr}
	acc.Lamports = dec.U64()
	acc.Owner = dec.Address()
	acc.Executable = dec.Bool()
	acc.Data = dec.Bytes()
	if dec.Err() != nil {
		return nil, ErrInvalidAccountData
	}
	return acc, nil
}

// Clone 深拷贝
func (acc *Account) Clone() *Account {
	c := *acc
	if acc.Data != nil {
		c.Data = make([]byte, len(acc.Data))
		copy(c.Data, acc.Data)
	}
	return &c
}

// IsEmpty 从未写入过的账户
func (acc *Account) IsEmpty() bool {
	return acc.Lamports == 0 && len(acc.Data) == 0 && !acc.Executable
}

// AccountInfo 指令执行时程序看到的账户视图, 同一个地址在不同位置共享 *Account
type AccountInfo struct {
	*Account
	IsSigner   bool
	IsWritable bool
}

// DataIsEmpty 数据是否为空或者全 0
func (ai *AccountInfo) DataIsEmpty() bool {
	for _, b := range ai.Data {
		if b != 0 {
			return false
		}
	}
	return true
}
