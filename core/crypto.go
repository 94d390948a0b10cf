package core

import (
	"encoding/hex"

	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"gitlab.com/yawning/secp256k1-voi/secec"
	"golang.org/x/crypto/sha3"
)

// CredentialHRP is the bech32 prefix of credential addresses.
const CredentialHRP = "cus"

func GetHash(bytes []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(bytes)
	return hash.Sum(nil)
}

func SignBytes(bytes []byte, privatekey string) ([]byte, error) {

	hashed := GetHash(bytes)

	key, err := crypto.HexToECDSA(privatekey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key")
	}

	signature, err := crypto.Sign(hashed, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}

	return signature, nil
}

// VerifySignature recovers the signing key from a signature over message
// and checks that it encodes to the given credential address.
func VerifySignature(message []byte, signature []byte, addr string) error {

	hashed := GetHash(message)

	recoveredPub, err := crypto.Ecrecover(hashed, signature)
	if err != nil {
		return errors.Wrap(err, "failed to recover public key")
	}

	pubkey, err := secec.NewPublicKey(recoveredPub)
	if err != nil {
		return errors.Wrap(err, "failed to parse recovered public key")
	}
	compressed := pubkey.CompressedBytes()

	sigaddr, err := PubkeyBytesToAddr(compressed, CredentialHRP)
	if err != nil {
		return errors.Wrap(err, "failed to convert public key to address")
	}

	if sigaddr != addr {
		return errors.New("signature is not matched with address. expected: " + addr + ", actual: " + sigaddr)
	}

	return nil
}

func PubkeyBytesToAddr(pubkeyBytes []byte, hrp string) (string, error) {
	pubkey := secp256k1.PubKey{
		Key: pubkeyBytes,
	}

	account := sdk.AccAddress(pubkey.Address())
	cdc := address.NewBech32Codec(hrp)
	addr, err := cdc.BytesToString(account)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert address")
	}

	return addr, nil
}

func PubkeyToAddr(pubkeyHex string, hrp string) (string, error) {
	pubKeyBytes, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode public key")
	}

	return PubkeyBytesToAddr(pubKeyBytes, hrp)
}

func PrivKeyToAddr(privKeyHex string, hrp string) (string, error) {
	privKeyBytes, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode private key")
	}

	privKey := secp256k1.PrivKey{
		Key: privKeyBytes,
	}

	pubkey := privKey.PubKey()

	return PubkeyBytesToAddr(pubkey.Bytes(), hrp)
}

// IsCredentialAddress reports whether id looks like a bech32 credential
// address rather than an actor id.
func IsCredentialAddress(id string) bool {
	return len(id) > len(CredentialHRP)+1 && id[:len(CredentialHRP)+1] == CredentialHRP+"1"
}
