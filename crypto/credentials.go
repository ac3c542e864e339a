package crypto

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

// Credentials is the short-lived bundle of signing material for one
// Sign call: the signing certificate, its private key, and the issuing
// authority (intermediate) certificate completing the trust chain.
// Callers should build it immediately before signing and drop it right
// after; it is never stored on a pass or any long-lived component.
type Credentials struct {
	Certificate  *x509.Certificate
	PrivateKey   any
	Intermediate *x509.Certificate
}

// LoadCredentials parses PEM-encoded signing material. The private key
// may be PKCS#1, SEC 1 or PKCS#8 encoded, and may carry legacy PEM
// encryption, in which case password decrypts it. intermediatePEM is
// optional.
func LoadCredentials(certPEM, keyPEM, intermediatePEM []byte, password string) (*Credentials, error) {
	cert, err := parseCertificatePEM(certPEM)
	if err != nil {
		return nil, &SigningError{Reason: "failed to load signing certificate", Err: err}
	}

	key, err := parsePrivateKeyPEM(keyPEM, password)
	if err != nil {
		return nil, &SigningError{Reason: "failed to load private key", Err: err}
	}

	creds := &Credentials{Certificate: cert, PrivateKey: key}
	if len(intermediatePEM) > 0 {
		intermediate, err := parseCertificatePEM(intermediatePEM)
		if err != nil {
			return nil, &SigningError{Reason: "failed to load intermediate certificate", Err: err}
		}
		creds.Intermediate = intermediate
	}

	if err := creds.checkKeyPair(); err != nil {
		return nil, err
	}
	return creds, nil
}

// LoadCredentialsPKCS12 extracts the signing certificate and private
// key from a PKCS#12 (.p12) bundle. intermediatePEM is optional.
func LoadCredentialsPKCS12(p12, intermediatePEM []byte, password string) (*Credentials, error) {
	key, cert, err := pkcs12.Decode(p12, password)
	if err != nil {
		return nil, &SigningError{Reason: "failed to decode PKCS#12 bundle", Err: err}
	}

	creds := &Credentials{Certificate: cert, PrivateKey: key}
	if len(intermediatePEM) > 0 {
		intermediate, err := parseCertificatePEM(intermediatePEM)
		if err != nil {
			return nil, &SigningError{Reason: "failed to load intermediate certificate", Err: err}
		}
		creds.Intermediate = intermediate
	}

	if err := creds.checkKeyPair(); err != nil {
		return nil, err
	}
	return creds, nil
}

func parseCertificatePEM(data []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("expected CERTIFICATE block, got %q", block.Type)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return cert, nil
}

func parsePrivateKeyPEM(data []byte, password string) (any, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	der := block.Bytes
	if x509.IsEncryptedPEMBlock(block) { //nolint:staticcheck // legacy encrypted PEM keys are part of the supported input surface
		decrypted, err := x509.DecryptPEMBlock(block, []byte(password)) //nolint:staticcheck
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt private key: %w", err)
		}
		der = decrypted
	}

	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	switch key.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey:
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported private key type %T", key)
	}
}
