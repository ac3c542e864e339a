package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync"
	"testing"
	"time"
)

// testChain is a self-signed authority plus a leaf signing certificate,
// generated once per test binary. Key generation is the slow part, so
// all tests share one chain.
type testChain struct {
	authority    *x509.Certificate
	authorityKey *rsa.PrivateKey
	leaf         *x509.Certificate
	leafKey      *rsa.PrivateKey
}

var (
	chainOnce sync.Once
	chain     testChain
	chainErr  error
)

func getTestChain(t *testing.T) testChain {
	t.Helper()
	chainOnce.Do(func() {
		chain, chainErr = generateTestChain()
	})
	if chainErr != nil {
		t.Fatalf("failed to generate test chain: %v", chainErr)
	}
	return chain
}

func generateTestChain() (testChain, error) {
	authorityKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return testChain{}, err
	}
	authorityTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Pass Authority", Organization: []string{"walletpass"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	authorityDER, err := x509.CreateCertificate(rand.Reader, authorityTemplate, authorityTemplate, &authorityKey.PublicKey, authorityKey)
	if err != nil {
		return testChain{}, err
	}
	authority, err := x509.ParseCertificate(authorityDER)
	if err != nil {
		return testChain{}, err
	}

	leafKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return testChain{}, err
	}
	leaf, err := issueLeaf(authority, authorityKey, &leafKey.PublicKey)
	if err != nil {
		return testChain{}, err
	}

	return testChain{
		authority:    authority,
		authorityKey: authorityKey,
		leaf:         leaf,
		leafKey:      leafKey,
	}, nil
}

func issueLeaf(authority *x509.Certificate, authorityKey any, publicKey any) (*x509.Certificate, error) {
	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: "Test Pass Signer", Organization: []string{"walletpass"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, authority, publicKey, authorityKey)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}

// generateECDSALeaf issues an ECDSA P-256 signing certificate off the
// shared authority.
func generateECDSALeaf(t *testing.T) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	tc := getTestChain(t)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ECDSA key: %v", err)
	}
	cert, err := issueLeaf(tc.authority, tc.authorityKey, &key.PublicKey)
	if err != nil {
		t.Fatalf("failed to issue ECDSA leaf: %v", err)
	}
	return cert, key
}

func testCredentials(t *testing.T) *Credentials {
	tc := getTestChain(t)
	return &Credentials{
		Certificate:  tc.leaf,
		PrivateKey:   tc.leafKey,
		Intermediate: tc.authority,
	}
}
