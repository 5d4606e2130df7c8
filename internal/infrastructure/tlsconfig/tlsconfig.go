package tlsconfig

import (
	"crypto/tls"
	"encoding/pem"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Sources names where key material may come from. Files win over inline PEM.
type Sources struct {
	KeyPath  string
	CertPath string
	CAPath   string
	Key      string
	Cert     string
	CA       string
}

func withDefaults(s Sources) Sources {
	if s.KeyPath == "" {
		s.KeyPath = filepath.Join("ssl", "private.key")
	}
	if s.CertPath == "" {
		s.CertPath = filepath.Join("ssl", "certificate.crt")
	}
	if s.CAPath == "" {
		s.CAPath = filepath.Join("ssl", "ca-bundle.crt")
	}
	return s
}

func read(path, inline, what string) []byte {
	if b, err := os.ReadFile(path); err == nil {
		log.Info().Str("path", path).Msgf("SSL %s loaded from file", what)
		return b
	}
	if inline != "" {
		log.Info().Msgf("SSL %s loaded from environment variable", what)
		return []byte(inline)
	}
	return nil
}

// Load returns nil, nil when no usable key/cert pair is found; the caller
// then serves plain HTTP.
func Load(src Sources) (*tls.Config, error) {
	src = withDefaults(src)
	key := read(src.KeyPath, src.Key, "private key")
	cert := read(src.CertPath, src.Cert, "certificate")
	ca := read(src.CAPath, src.CA, "CA bundle")

	if len(key) == 0 || len(cert) == 0 {
		log.Warn().Msg("SSL configuration incomplete - HTTPS will not be enabled")
		return nil, nil
	}

	// intermediates from the CA bundle are served after the leaf
	chain := append([]byte{}, cert...)
	if len(ca) > 0 {
		chain = append(chain, '\n')
		chain = append(chain, ca...)
	}
	pair, err := tls.X509KeyPair(chain, key)
	if err != nil {
		return nil, err
	}
	log.Info().Int("chain_certs", CountCerts(chain)).Msg("TLS material loaded")
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}, nil
}

// CountCerts reports how many CERTIFICATE blocks a PEM bundle holds.
func CountCerts(b []byte) int {
	n := 0
	for {
		var block *pem.Block
		block, b = pem.Decode(b)
		if block == nil {
			return n
		}
		if block.Type == "CERTIFICATE" {
			n++
		}
	}
}
