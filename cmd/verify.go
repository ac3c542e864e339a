package cmd

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/walletpass/passkit/bundle"
	"github.com/walletpass/passkit/crypto"
)

// VerifyCommand creates the verify command
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check the manifest hashes and signature of a pass bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Bundle file to verify (.pkpass)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "cert",
				Usage: "Trusted signer certificate (PEM); required unless --no-chain is set",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Signature serialization: DER or PEM",
				Value: string(crypto.FormatDER),
			},
			&cli.BoolFlag{
				Name:  "no-chain",
				Usage: "Skip certificate chain validation, check only the cryptographic binding",
			},
		},
		Action: runVerifyCommand,
	}
}

func runVerifyCommand(ctx context.Context, cmd *cli.Command) error {
	data, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read bundle: %w", err)
	}

	a, err := bundle.OpenBytes(data)
	if err != nil {
		return err
	}

	if err := a.VerifyManifest(); err != nil {
		return fmt.Errorf("manifest check failed: %w", err)
	}
	fmt.Println("manifest: OK")

	skipChain := cmd.Bool("no-chain")
	var signerCert *x509.Certificate
	if certPath := cmd.String("cert"); certPath != "" {
		certPEM, err := os.ReadFile(certPath)
		if err != nil {
			return fmt.Errorf("failed to read signer certificate: %w", err)
		}
		block, _ := pem.Decode(certPEM)
		if block == nil {
			return fmt.Errorf("signer certificate is not valid PEM")
		}
		signerCert, err = x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("failed to parse signer certificate: %w", err)
		}
	}

	ok, err := a.VerifySignature(signerCert, crypto.SignatureFormat(cmd.String("format")), skipChain)
	if err != nil {
		return fmt.Errorf("signature check failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("signature is not valid for the archived manifest")
	}
	fmt.Println("signature: OK")
	return nil
}
