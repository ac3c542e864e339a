// Package crypto provides detached PKCS#7 signature creation and
// verification for pass manifests, plus loading of the signing
// credentials.
//
// # Signing
//
// Sign produces a detached SignedData structure over the exact manifest
// bytes, with the signing certificate chained through the issuing
// authority certificate:
//
//	signature, err := crypto.Sign(manifestBytes, creds)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Verification
//
// Verify recomputes whether a signature covers the given content. A
// clean digest mismatch or corrupted signature value is reported as
// (false, nil); only structurally unparseable input is an error:
//
//	ok, err := crypto.Verify(signerCert, content, signature, crypto.FormatDER, true)
//
// The signature binds to the exact byte sequence, so changing a single
// content byte flips the result to false.
package crypto

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/smallstep/pkcs7"
)

// SignatureFormat selects the serialization of a detached signature:
// the binary native form or the textual PEM envelope.
type SignatureFormat string

const (
	FormatDER SignatureFormat = "DER"
	FormatPEM SignatureFormat = "PEM"
)

// signaturePEMType is the block type used for PEM-enveloped signatures.
const signaturePEMType = "PKCS7"

// Sign produces a detached PKCS#7 signature over content using the
// given credentials. The intermediate certificate, when present, is
// embedded so verifiers can complete the chain from the signing
// certificate to their trust anchor. Credential material is used for
// this one call only and never retained.
func Sign(content []byte, creds *Credentials) ([]byte, error) {
	if creds == nil || creds.Certificate == nil || creds.PrivateKey == nil {
		return nil, &SigningError{Reason: "certificate and private key are required"}
	}
	if err := creds.checkKeyPair(); err != nil {
		return nil, err
	}

	signed, err := pkcs7.NewSignedData(content)
	if err != nil {
		return nil, &SigningError{Reason: "failed to initialize signed data", Err: err}
	}
	signed.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	var parents []*x509.Certificate
	if creds.Intermediate != nil {
		parents = []*x509.Certificate{creds.Intermediate}
	}
	if err := signed.AddSignerChain(creds.Certificate, creds.PrivateKey, parents, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, &SigningError{Reason: "failed to add signer", Err: err}
	}

	signed.Detach()
	signature, err := signed.Finish()
	if err != nil {
		return nil, &SigningError{Reason: "failed to finalize signature", Err: err}
	}
	return signature, nil
}

// EncodePEM wraps a DER signature in its textual PEM envelope.
func EncodePEM(derSignature []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: signaturePEMType, Bytes: derSignature})
}

// Verify reports whether signature is a valid detached signature over
// content. The format argument states how the signature is serialized;
// both forms carry the same structure.
//
// With skipChainValidation the embedded certificates are trusted as-is
// and only the cryptographic binding is checked; otherwise the chain
// must terminate at signerCert.
//
// Tampered content or a broken signature value returns (false, nil).
// A signature that cannot be parsed at all returns a VerificationError.
func Verify(signerCert *x509.Certificate, content, signature []byte, format SignatureFormat, skipChainValidation bool) (bool, error) {
	der := signature
	switch format {
	case FormatDER:
	case FormatPEM:
		block, _ := pem.Decode(signature)
		if block == nil {
			return false, &VerificationError{Reason: "signature is not valid PEM"}
		}
		der = block.Bytes
	default:
		return false, &VerificationError{Reason: fmt.Sprintf("unknown signature format %q", format)}
	}

	p7, err := pkcs7.Parse(der)
	if err != nil {
		return false, &VerificationError{Reason: "failed to parse signature", Err: err}
	}

	// Detached signature: the content travels outside the structure.
	p7.Content = content

	if skipChainValidation {
		if err := p7.Verify(); err != nil {
			return false, nil
		}
		return true, nil
	}

	if signerCert == nil {
		return false, &VerificationError{Reason: "signer certificate is required for chain validation"}
	}
	truststore := x509.NewCertPool()
	truststore.AddCert(signerCert)
	if err := p7.VerifyWithChain(truststore); err != nil {
		return false, nil
	}
	return true, nil
}

// checkKeyPair confirms that the private key belongs to the signing
// certificate, so a mismatched pair fails at signing time instead of
// producing a signature nothing can verify.
func (c *Credentials) checkKeyPair() error {
	signer, ok := c.PrivateKey.(crypto.Signer)
	if !ok {
		return &SigningError{Reason: fmt.Sprintf("unsupported private key type %T", c.PrivateKey)}
	}
	public, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok {
		return &SigningError{Reason: fmt.Sprintf("unsupported public key type %T", signer.Public())}
	}
	if !public.Equal(c.Certificate.PublicKey) {
		return &SigningError{Reason: "private key does not match certificate"}
	}
	return nil
}
