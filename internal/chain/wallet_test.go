package chain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLoadKeyHex(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	loaded, err := LoadKey(KeyConfig{PrivateKey: hexutil.Encode(crypto.FromECDSA(key))})
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(loaded.PublicKey))
}

func TestLoadKeyKeystore(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	id, err := uuid.NewRandom()
	require.NoError(t, err)
	ks := &keystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	data, err := keystore.EncryptKey(ks, "secret", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadKey(KeyConfig{Keystore: path, KeystorePassword: "secret"})
	require.NoError(t, err)
	require.Equal(t, ks.Address, crypto.PubkeyToAddress(loaded.PublicKey))

	_, err = LoadKey(KeyConfig{Keystore: path, KeystorePassword: "wrong"})
	require.Error(t, err)
}

func TestLoadKeyMissing(t *testing.T) {
	_, err := LoadKey(KeyConfig{})
	require.Error(t, err)

	_, err = LoadKey(KeyConfig{PrivateKey: "0xnothex"})
	require.Error(t, err)
}
