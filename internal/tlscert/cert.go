// Package tlscert самоподписанный сертификат для локального HTTPS.
package tlscert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const validity = 365 * 24 * time.Hour

// EnsurePair проверяет пару сертификат/ключ по указанным путям. Если файлов нет, они пусты
// или сертификат просрочен - выпускает новую самоподписанную пару на localhost и hosts.
//
// Параметры:
//   - certPath: путь к PEM сертификату
//   - keyPath: путь к PEM ключу
//   - hosts: дополнительные DNS имена или IP адреса
//
// Возвращает:
//   - error: ошибка проверки или записи файлов
func EnsurePair(certPath, keyPath string, hosts ...string) error {
	err := Check(certPath, keyPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrBlankPEM) && !errors.Is(err, ErrCertExpired) {
		return fmt.Errorf("check certificate pair: %w", err)
	}

	certPEM, keyPEM, genErr := Generate(hosts...)
	if genErr != nil {
		return genErr
	}
	if writeErr := writeFile(certPath, certPEM); writeErr != nil {
		return fmt.Errorf("save certificate: %w", writeErr)
	}
	if writeErr := writeFile(keyPath, keyPEM); writeErr != nil {
		return fmt.Errorf("save private key: %w", writeErr)
	}
	return nil
}

// Check проверяет, что пара читается, ключ подходит к сертификату и срок действия не истек.
func Check(certPath, keyPath string) error {
	for _, p := range []string{certPath, keyPath} {
		info, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0) {
			return ErrBlankPEM
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
	}

	pair, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}
	cert, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return fmt.Errorf("parse certificate: %w", err)
	}

	now := time.Now()
	if cert.NotBefore.After(now) {
		return ErrCertNotValidYet
	}
	if cert.NotAfter.Before(now) {
		return ErrCertExpired
	}
	return nil
}

// Generate выпускает самоподписанную пару на ECDSA P-256. Возвращает PEM сертификата и ключа.
func Generate(hosts ...string) ([]byte, []byte, error) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)) //nolint:mnd
	if err != nil {
		return nil, nil, fmt.Errorf("generate serial number: %w", err)
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"shortlinks"}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}, //nolint:mnd
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else if h != "" {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &privKey.PublicKey, privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("generate certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600) //nolint:mnd
}
