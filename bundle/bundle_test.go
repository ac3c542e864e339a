package bundle

import (
	"archive/zip"
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletpass/passkit/crypto"
	"github.com/walletpass/passkit/manifest"
	"github.com/walletpass/passkit/pass"
)

type testSigner struct {
	creds     *crypto.Credentials
	authority *x509.Certificate
}

var (
	signerOnce sync.Once
	signer     testSigner
	signerErr  error
)

func getTestSigner(t *testing.T) testSigner {
	t.Helper()
	signerOnce.Do(func() {
		signer, signerErr = generateTestSigner()
	})
	if signerErr != nil {
		t.Fatalf("failed to generate signing credentials: %v", signerErr)
	}
	return signer
}

func generateTestSigner() (testSigner, error) {
	authorityKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return testSigner{}, err
	}
	authorityTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Bundle Test Authority"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	authorityDER, err := x509.CreateCertificate(rand.Reader, authorityTemplate, authorityTemplate, &authorityKey.PublicKey, authorityKey)
	if err != nil {
		return testSigner{}, err
	}
	authority, err := x509.ParseCertificate(authorityDER)
	if err != nil {
		return testSigner{}, err
	}

	leafKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return testSigner{}, err
	}
	leafTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "Bundle Test Signer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTemplate, authority, &leafKey.PublicKey, authorityKey)
	if err != nil {
		return testSigner{}, err
	}
	leaf, err := x509.ParseCertificate(leafDER)
	if err != nil {
		return testSigner{}, err
	}

	return testSigner{
		creds:     &crypto.Credentials{Certificate: leaf, PrivateKey: leafKey, Intermediate: authority},
		authority: authority,
	}, nil
}

func createShellPass(t *testing.T) *pass.Pass {
	t.Helper()
	card := pass.NewStoreCard()
	card.AddPrimaryField(pass.TextField("name", "Jähn Doe", "Name"))

	p := pass.New(card, "Org Name", "Pass Type ID", "Team Identifier")
	p.SetBarcode(pass.NewBarcode("test barcode", pass.BarcodeFormatCode128, "alternate text"))
	p.SerialNumber = "1234567"
	p.Description = "A Sample Pass"
	return p
}

func TestBuildBytes(t *testing.T) {
	ts := getTestSigner(t)
	p := createShellPass(t)
	require.NoError(t, p.AddAsset("icon.png", strings.NewReader("icon image")))

	archive, err := BuildBytes(p, ts.creds)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{PassFileName, ManifestFileName, SignatureFileName, "icon.png"}, names)
}

func TestBuildRoundTrip(t *testing.T) {
	ts := getTestSigner(t)
	p := createShellPass(t)
	require.NoError(t, p.AddAsset("icon.png", strings.NewReader("icon image")))

	data, err := BuildBytes(p, ts.creds)
	require.NoError(t, err)

	a, err := OpenBytes(data)
	require.NoError(t, err)

	// The archived pass JSON is exactly what the unmodified pass
	// serializes to.
	passJSON, err := p.Serialize()
	require.NoError(t, err)
	assert.Equal(t, passJSON, a.PassJSON)

	// The archived manifest covers pass.json plus every asset.
	m, err := manifest.Parse(a.ManifestJSON)
	require.NoError(t, err)
	assert.Len(t, m, p.AssetCount()+1)

	require.NoError(t, a.VerifyManifest())

	ok, err := a.VerifySignature(nil, crypto.FormatDER, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifySignature(ts.authority, crypto.FormatDER, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildDeterministicManifest(t *testing.T) {
	ts := getTestSigner(t)
	p := createShellPass(t)

	first, err := BuildBytes(p, ts.creds)
	require.NoError(t, err)
	second, err := BuildBytes(p, ts.creds)
	require.NoError(t, err)

	a1, err := OpenBytes(first)
	require.NoError(t, err)
	a2, err := OpenBytes(second)
	require.NoError(t, err)

	// Manifest and pass JSON are recomputed fresh each build and come
	// out identical for unchanged input; the signatures differ (each
	// build signs anew) but both verify.
	assert.Equal(t, a1.PassJSON, a2.PassJSON)
	assert.Equal(t, a1.ManifestJSON, a2.ManifestJSON)

	ok, err := a2.VerifySignature(nil, crypto.FormatDER, true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildStageErrors(t *testing.T) {
	ts := getTestSigner(t)

	t.Run("pass stage", func(t *testing.T) {
		p := createShellPass(t)
		p.SerialNumber = ""

		err := Build(p, ts.creds, &bytes.Buffer{})
		var berr *BuildError
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, StagePass, berr.Stage)

		var verr *pass.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("signature stage", func(t *testing.T) {
		p := createShellPass(t)

		err := Build(p, nil, &bytes.Buffer{})
		var berr *BuildError
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, StageSignature, berr.Stage)

		var serr *crypto.SigningError
		assert.ErrorAs(t, err, &serr)
	})
}

func TestBuildNoPartialOutput(t *testing.T) {
	p := createShellPass(t)

	var out bytes.Buffer
	err := Build(p, nil, &out)
	require.Error(t, err)
	assert.Zero(t, out.Len())
}

func TestOpenMissingEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		missing string
	}{
		{"no signature", map[string]string{PassFileName: "{}", ManifestFileName: "{}"}, SignatureFileName},
		{"no manifest", map[string]string{PassFileName: "{}", SignatureFileName: "sig"}, ManifestFileName},
		{"no pass json", map[string]string{ManifestFileName: "{}", SignatureFileName: "sig"}, PassFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			for name, content := range tt.entries {
				f, err := zw.Create(name)
				require.NoError(t, err)
				_, err = f.Write([]byte(content))
				require.NoError(t, err)
			}
			require.NoError(t, zw.Close())

			_, err := OpenBytes(buf.Bytes())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestOpenNotAZip(t *testing.T) {
	_, err := OpenBytes([]byte("not an archive"))
	require.Error(t, err)
}

func TestVerifyManifestDetectsTampering(t *testing.T) {
	ts := getTestSigner(t)
	p := createShellPass(t)
	require.NoError(t, p.AddAsset("icon.png", strings.NewReader("icon image")))

	data, err := BuildBytes(p, ts.creds)
	require.NoError(t, err)
	a, err := OpenBytes(data)
	require.NoError(t, err)

	t.Run("modified asset", func(t *testing.T) {
		tampered := *a
		tampered.Assets = []pass.Asset{{Name: "icon.png", Data: []byte("different image")}}
		err := tampered.VerifyManifest()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "icon.png")
	})

	t.Run("extra file", func(t *testing.T) {
		tampered := *a
		tampered.Assets = append([]pass.Asset{{Name: "sneaky.png", Data: []byte("x")}}, a.Assets...)
		err := tampered.VerifyManifest()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sneaky.png")
	})

	t.Run("modified manifest fails signature", func(t *testing.T) {
		tampered := *a
		tampered.ManifestJSON = []byte(`{"pass.json": "foobar"}`)
		ok, err := tampered.VerifySignature(nil, crypto.FormatDER, true)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBuildRaw(t *testing.T) {
	ts := getTestSigner(t)
	passJSON := []byte(`{"formatVersion":1,"serialNumber":"1"}`)
	assets := []pass.Asset{{Name: "icon.png", Data: []byte("icon")}}

	var buf bytes.Buffer
	require.NoError(t, BuildRaw(passJSON, assets, ts.creds, &buf))

	a, err := OpenBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, passJSON, a.PassJSON)
	require.NoError(t, a.VerifyManifest())
}
