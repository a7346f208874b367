package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/0xsj/overwatch-pkg/provenance"
	"github.com/0xsj/overwatch-pkg/security"

	"github.com/0xsj/overwatch-kernel/internal/config"
)

// ErrNoServiceIdentity is returned when no key is configured and generation is disabled.
var ErrNoServiceIdentity = errors.New("no service identity configured and generation disabled")

// ServiceIdentityManager holds the kernel's cryptographic service identity.
type ServiceIdentityManager struct {
	identity *provenance.ServiceIdentity
}

// NewServiceIdentityManager creates a new service identity manager from config.
func NewServiceIdentityManager(cfg config.ServiceIdentityConfig) (*ServiceIdentityManager, error) {
	var identity *provenance.ServiceIdentity
	var err error

	// Priority: Base64 key > File path > Generate
	switch {
	case cfg.PrivateKeyBase64 != "":
		identity, err = loadIdentityFromBase64(cfg.ID, cfg.Name, cfg.PrivateKeyBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to load identity from base64: %w", err)
		}
	case cfg.PrivateKeyPath != "":
		identity, err = loadIdentityFromFile(cfg.ID, cfg.Name, cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load identity from file: %w", err)
		}
	case cfg.GenerateIfMissing:
		identity, err = provenance.GenerateServiceIdentity(cfg.ID, cfg.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to generate identity: %w", err)
		}
	default:
		return nil, ErrNoServiceIdentity
	}

	return &ServiceIdentityManager{identity: identity}, nil
}

// Identity returns the service identity.
func (m *ServiceIdentityManager) Identity() *provenance.ServiceIdentity {
	return m.identity
}

// DID returns the service's DID string.
func (m *ServiceIdentityManager) DID() string {
	return m.identity.DID()
}

// ServiceName returns the service name.
func (m *ServiceIdentityManager) ServiceName() string {
	return m.identity.ServiceName()
}

// PublicKeyBase64 returns the base64-encoded public key.
func (m *ServiceIdentityManager) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(m.identity.PublicKey())
}

func loadIdentityFromBase64(id, name, keyBase64 string) (*provenance.ServiceIdentity, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(keyBase64))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	return identityFromKey(id, name, keyBytes)
}

func loadIdentityFromFile(id, name, path string) (*provenance.ServiceIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	// Base64 text first, raw bytes otherwise.
	keyBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		keyBytes = data
	}
	return identityFromKey(id, name, keyBytes)
}

// identityFromKey accepts a 32-byte seed or a 64-byte private key.
func identityFromKey(id, name string, key []byte) (*provenance.ServiceIdentity, error) {
	keyPair, err := security.NewEd25519FromSeed(key)
	if err != nil {
		keyPair, err = security.NewEd25519FromPrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid Ed25519 key: %w", err)
		}
	}
	return provenance.NewServiceIdentity(id, name, keyPair)
}
