package tlsconfig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfSigned(t *testing.T) (certPEM, keyPEM []byte) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(priv)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
}

func missing(t *testing.T) Sources {
	dir := t.TempDir()
	return Sources{
		KeyPath:  filepath.Join(dir, "nokey"),
		CertPath: filepath.Join(dir, "nocert"),
		CAPath:   filepath.Join(dir, "noca"),
	}
}

func TestLoad_Incomplete(t *testing.T) {
	cfg, err := Load(missing(t))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FromEnvWithCA(t *testing.T) {
	cert, key := selfSigned(t)
	ca, _ := selfSigned(t)
	src := missing(t)
	src.Cert, src.Key, src.CA = string(cert), string(key), string(ca)

	cfg, err := Load(src)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Len(t, cfg.Certificates, 1)
	assert.Len(t, cfg.Certificates[0].Certificate, 2)
}

func TestLoad_FilesWin(t *testing.T) {
	cert, key := selfSigned(t)
	src := missing(t)
	require.NoError(t, os.WriteFile(src.CertPath, cert, 0o600))
	require.NoError(t, os.WriteFile(src.KeyPath, key, 0o600))
	src.Cert = "garbage"
	src.Key = "garbage"

	cfg, err := Load(src)
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoad_BadPEM(t *testing.T) {
	src := missing(t)
	src.Cert, src.Key = "bad", "bad"
	_, err := Load(src)
	assert.Error(t, err)
}

func TestCountCerts(t *testing.T) {
	a, _ := selfSigned(t)
	b, _ := selfSigned(t)
	assert.Equal(t, 2, CountCerts(append(a, b...)))
	assert.Equal(t, 0, CountCerts([]byte("nothing")))
}
