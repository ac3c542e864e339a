package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/walletpass/passkit/bundle"
	"github.com/walletpass/passkit/crypto"
	"github.com/walletpass/passkit/pass"
)

// BuildCommand creates the build command
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Sign a pass directory into a distributable bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Usage:    "Directory containing pass.json and asset files",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Output bundle path (.pkpass)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "cert",
				Usage: "Signing certificate (PEM)",
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "Private key (PEM, optionally encrypted)",
			},
			&cli.StringFlag{
				Name:  "p12",
				Usage: "PKCS#12 bundle with certificate and key (alternative to --cert/--key)",
			},
			&cli.StringFlag{
				Name:  "wwdr",
				Usage: "Intermediate authority certificate (PEM)",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Password for the private key or PKCS#12 bundle",
			},
		},
		Action: runBuildCommand,
	}
}

func runBuildCommand(ctx context.Context, cmd *cli.Command) error {
	inDir := cmd.String("in")
	outPath := cmd.String("out")

	creds, err := loadCredentials(cmd)
	if err != nil {
		return err
	}

	passJSON, assets, err := readPassDirectory(inDir)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := bundle.BuildRaw(passJSON, assets, creds, out); err != nil {
		return fmt.Errorf("failed to build bundle: %w", err)
	}

	fmt.Printf("wrote %s (%d assets)\n", outPath, len(assets))
	return nil
}

// loadCredentials reads signing material from either a PKCS#12 bundle
// or a PEM certificate/key pair, per the flags given.
func loadCredentials(cmd *cli.Command) (*crypto.Credentials, error) {
	password := cmd.String("password")

	var wwdrPEM []byte
	if path := cmd.String("wwdr"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read intermediate certificate: %w", err)
		}
		wwdrPEM = data
	}

	if p12Path := cmd.String("p12"); p12Path != "" {
		p12, err := os.ReadFile(p12Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read PKCS#12 bundle: %w", err)
		}
		return crypto.LoadCredentialsPKCS12(p12, wwdrPEM, password)
	}

	certPath, keyPath := cmd.String("cert"), cmd.String("key")
	if certPath == "" || keyPath == "" {
		return nil, fmt.Errorf("either --p12 or both --cert and --key are required")
	}
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	return crypto.LoadCredentials(certPEM, keyPEM, wwdrPEM, password)
}

// readPassDirectory loads a pre-authored pass.json plus every other
// regular file in dir as an asset. Assets are ordered by name so the
// resulting bundle does not depend on directory iteration order.
func readPassDirectory(dir string) ([]byte, []pass.Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read pass directory: %w", err)
	}

	var passJSON []byte
	var assets []pass.Asset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if entry.Name() == bundle.PassFileName {
			passJSON = data
			continue
		}
		assets = append(assets, pass.Asset{Name: entry.Name(), Data: data})
	}
	if passJSON == nil {
		return nil, nil, fmt.Errorf("pass directory has no %s", bundle.PassFileName)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return passJSON, assets, nil
}
