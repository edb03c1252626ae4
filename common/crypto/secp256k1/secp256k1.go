// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secp256k1 交易签名使用的 secp256k1 算法
package secp256k1

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/33cn/roulette/common"
	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/common/crypto"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

//Name 算法名称
const Name = "secp256k1"

func init() {
	crypto.Register(Name, Driver{})
}

//Driver 驱动
type Driver struct{}

//GenKey 生成私钥
func (d Driver) GenKey() (crypto.PrivKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	var privKey PrivKeySecp256k1
	copy(privKey[:], priv.Serialize())
	return privKey, nil
}

//PrivKeyFromBytes 字节转为私钥
func (d Driver) PrivKeyFromBytes(b []byte) (privKey crypto.PrivKey, err error) {
	if len(b) != 32 {
		return nil, errors.New("invalid priv key byte")
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	var key PrivKeySecp256k1
	copy(key[:], priv.Serialize())
	return key, nil
}

//PubKeyFromBytes 字节转为公钥
func (d Driver) PubKeyFromBytes(b []byte) (pubKey crypto.PubKey, err error) {
	if len(b) != 33 {
		return nil, errors.New("invalid pub key byte")
	}
	var key PubKeySecp256k1
	copy(key[:], b)
	return key, nil
}

//SignatureFromBytes 字节转为签名
func (d Driver) SignatureFromBytes(b []byte) (sig crypto.Signature, err error) {
	return SignatureSecp256k1(common.CopyBytes(b)), nil
}

//PrivKeySecp256k1 私钥
type PrivKeySecp256k1 [32]byte

//Bytes 字节格式
func (privKey PrivKeySecp256k1) Bytes() []byte {
	s := make([]byte, 32)
	copy(s, privKey[:])
	return s
}

//Sign 对 sha256(msg) 签名, DER 编码
func (privKey PrivKeySecp256k1) Sign(msg []byte) crypto.Signature {
	priv, _ := btcec.PrivKeyFromBytes(privKey[:])
	hash := sha256.Sum256(msg)
	sig := ecdsa.Sign(priv, hash[:])
	return SignatureSecp256k1(sig.Serialize())
}

//PubKey 压缩格式公钥
func (privKey PrivKeySecp256k1) PubKey() crypto.PubKey {
	_, pub := btcec.PrivKeyFromBytes(privKey[:])
	var pubSecp256k1 PubKeySecp256k1
	copy(pubSecp256k1[:], pub.SerializeCompressed())
	return pubSecp256k1
}

//Equals 私钥是否相等
func (privKey PrivKeySecp256k1) Equals(other crypto.PrivKey) bool {
	if otherSecp, ok := other.(PrivKeySecp256k1); ok {
		return bytes.Equal(privKey[:], otherSecp[:])
	}
	return false
}

//PubKeySecp256k1 公钥
type PubKeySecp256k1 [33]byte

//Bytes 字节格式
func (pubKey PubKeySecp256k1) Bytes() []byte {
	s := make([]byte, 33)
	copy(s, pubKey[:])
	return s
}

//VerifyBytes 验证签名
func (pubKey PubKeySecp256k1) VerifyBytes(msg []byte, sig crypto.Signature) bool {
	pub, err := btcec.ParsePubKey(pubKey[:])
	if err != nil {
		return false
	}
	sigSecp, ok := sig.(SignatureSecp256k1)
	if !ok {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sigSecp)
	if err != nil {
		return false
	}
	hash := sha256.Sum256(msg)
	return parsed.Verify(hash[:], pub)
}

func (pubKey PubKeySecp256k1) String() string {
	return fmt.Sprintf("PubKeySecp256k1{%X}", pubKey[:])
}

//KeyString 十六进制
func (pubKey PubKeySecp256k1) KeyString() string {
	return common.ToHex(pubKey[:])
}

//Equals 公钥是否相等
func (pubKey PubKeySecp256k1) Equals(other crypto.PubKey) bool {
	if otherSecp, ok := other.(PubKeySecp256k1); ok {
		return bytes.Equal(pubKey[:], otherSecp[:])
	}
	return false
}

//SignatureSecp256k1 DER 编码的签名
type SignatureSecp256k1 []byte

//IsZero 是否为空
func (sig SignatureSecp256k1) IsZero() bool { return len(sig) == 0 }

func (sig SignatureSecp256k1) String() string {
	if len(sig) < 6 {
		return fmt.Sprintf("/%X/", []byte(sig))
	}
	return fmt.Sprintf("/%X.../", []byte(sig[:6]))
}

//Bytes 字节格式
func (sig SignatureSecp256k1) Bytes() []byte {
	s := make([]byte, len(sig))
	copy(s, sig)
	return s
}

//Equals 签名是否相等
func (sig SignatureSecp256k1) Equals(other crypto.Signature) bool {
	if otherSecp, ok := other.(SignatureSecp256k1); ok {
		return bytes.Equal(sig, otherSecp)
	}
	return false
}

//PubKeyToAddress 公钥对应的账户地址
func PubKeyToAddress(pub crypto.PubKey) string {
	return address.PubKeyToAddress(pub.Bytes()).String()
}

//EncodeWIF 私钥导出为 WIF 格式
func EncodeWIF(privKey crypto.PrivKey) (string, error) {
	priv, _ := btcec.PrivKeyFromBytes(privKey.Bytes())
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

//DecodeWIF 从 WIF 导入私钥
func DecodeWIF(s string) (crypto.PrivKey, error) {
	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return nil, err
	}
	return Driver{}.PrivKeyFromBytes(wif.PrivKey.Serialize())
}
