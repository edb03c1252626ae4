// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address base58check 地址, 执行器地址以及程序派生地址
package address

import (
	"bytes"
	"errors"

	"github.com/33cn/roulette/common"
	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")
// 包级变量初始化时就可能调用 ExecAddress, cache 不能等到 init 再创建
var addressCache, _ = lru.New(10240)
var checkAddressCache, _ = lru.New(10240)

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

// Size is the length of a decoded address: version, hash160, checksum.
const Size = 25

var (
	// ErrAddressChecksum checksum mismatch
	ErrAddressChecksum = errors.New("ErrAddressChecksum")
	// ErrAddressLength decoded address has the wrong length
	ErrAddressLength = errors.New("ErrAddressLength")
)

//ExecPubKey 计算公钥
func ExecPubKey(name string) []byte {
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	hash := common.Sha2Sum(buf)
	return hash[:]
}

//ExecAddress 计算量有点大，做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	addr := PubKeyToAddress(ExecPubKey(name))
	addrstr := addr.String()
	addressCache.Add(name, addrstr)
	return addrstr
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) *Address {
	a := new(Address)
	a.Pubkey = make([]byte, len(in))
	copy(a.Pubkey[:], in[:])
	a.Version = 0
	a.Hash160 = common.Rimp160AfterSha256(in)
	return a
}

//CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = decode(addr)
	checkAddressCache.Add(addr, e)
	return
}

//NewAddrFromString new 地址
func NewAddrFromString(hs string) (*Address, error) {
	dec, err := decode(hs)
	if err != nil {
		return nil, err
	}
	a := new(Address)
	a.Version = dec[0]
	copy(a.Hash160[:], dec[1:21])
	a.Checksum = make([]byte, 4)
	copy(a.Checksum, dec[21:25])
	a.Enc58str = hs
	return a, nil
}

func decode(hs string) ([]byte, error) {
	dec := base58.Decode(hs)
	if len(dec) == 0 {
		return nil, errors.New("Cannot decode b58 string '" + hs + "'")
	}
	if len(dec) != Size {
		return nil, ErrAddressLength
	}
	sh := common.Sha2Sum(dec[0:21])
	if !bytes.Equal(sh[:4], dec[21:25]) {
		return nil, ErrAddressChecksum
	}
	return dec, nil
}

// ToBytes returns the decoded 25 byte form of addr. The empty string maps to
// all zero bytes so that unset record fields round trip.
func ToBytes(addr string) ([]byte, error) {
	if addr == "" {
		return make([]byte, Size), nil
	}
	return decode(addr)
}

// FromBytes is the inverse of ToBytes.
func FromBytes(b []byte) (string, error) {
	if len(b) != Size {
		return "", ErrAddressLength
	}
	if bytes.Equal(b, make([]byte, Size)) {
		return "", nil
	}
	sh := common.Sha2Sum(b[0:21])
	if !bytes.Equal(sh[:4], b[21:25]) {
		return "", ErrAddressChecksum
	}
	return base58.Encode(b), nil
}

// MustBytes is ToBytes for addresses known to be valid, such as program ids.
func MustBytes(addr string) []byte {
	b, err := ToBytes(addr)
	if err != nil {
		panic("invalid address " + addr + ": " + err.Error())
	}
	return b
}

//Address 地址
type Address struct {
	Version  byte
	Hash160  [20]byte
	Checksum []byte
	Pubkey   []byte
	Enc58str string
}

// Bytes returns version, hash160 and checksum.
func (a *Address) Bytes() []byte {
	var ad [Size]byte
	ad[0] = a.Version
	copy(ad[1:21], a.Hash160[:])
	if a.Checksum == nil {
		sh := common.Sha2Sum(ad[0:21])
		a.Checksum = make([]byte, 4)
		copy(a.Checksum, sh[:4])
	}
	copy(ad[21:25], a.Checksum[:])
	return ad[:]
}

func (a *Address) String() string {
	if a.Enc58str == "" {
		a.Enc58str = base58.Encode(a.Bytes())
	}
	return a.Enc58str
}
