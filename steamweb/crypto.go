package steamweb

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
)

// encryptPassword encrypts a password under the account's RSA key from
// GetPasswordRSAPublicKey (hex modulus, hex-parsed exponent), PKCS#1 v1.5,
// base64 for transport.
func encryptPassword(password, mod string, exp int64) (string, error) {
	var n big.Int
	if _, ok := n.SetString(mod, 16); !ok {
		return "", fmt.Errorf("invalid RSA modulus")
	}

	pubkey := rsa.PublicKey{N: &n, E: int(exp)}
	encPwd, err := rsa.EncryptPKCS1v15(rand.Reader, &pubkey, []byte(password))
	if err != nil {
		return "", fmt.Errorf("rsa encrypt: %w", err)
	}

	return base64.StdEncoding.EncodeToString(encPwd), nil
}
