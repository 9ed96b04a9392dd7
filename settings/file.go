package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk shape of a FileStore snapshot.
type fileDocument struct {
	ProtocolVersion    string `yaml:"protocol_version"`
	RemoteToSDKVerkey  string `yaml:"remote_to_sdk_verkey"`
	SDKToRemoteVerkey  string `yaml:"sdk_to_remote_verkey"`
	AgencyVerkey       string `yaml:"agency_verkey"`
	RemoteToSDKDID     string `yaml:"remote_to_sdk_did"`
}

// FileStore is a Store backed by a static YAML document, loaded once and
// held as an immutable snapshot for the process lifetime.
type FileStore struct {
	version Version
	values  map[string]string
}

// LoadFile reads and parses a settings YAML document from filename.
func LoadFile(filename string) (*FileStore, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("settings: failed to read file %s: %w", filename, err)
	}
	return ParseFile(data)
}

// ParseFile parses a settings YAML document already read into memory.
func ParseFile(data []byte) (*FileStore, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("settings: failed to parse yaml: %w", err)
	}

	version := Version(doc.ProtocolVersion)
	if version == "" {
		version = V1
	}
	if !version.Valid() {
		return nil, fmt.Errorf("settings: unknown protocol_version %q", doc.ProtocolVersion)
	}

	return &FileStore{
		version: version,
		values: map[string]string{
			KeyRemoteToSDKVerkey: doc.RemoteToSDKVerkey,
			KeySDKToRemoteVerkey: doc.SDKToRemoteVerkey,
			KeyAgencyVerkey:      doc.AgencyVerkey,
			KeyRemoteToSDKDID:    doc.RemoteToSDKDID,
		},
	}, nil
}

// NewFileStore builds a FileStore directly from already-resolved values,
// useful for tests and for callers assembling settings programmatically.
func NewFileStore(version Version, values map[string]string) *FileStore {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &FileStore{version: version, values: copied}
}

func (s *FileStore) ProtocolVersion() Version { return s.version }

func (s *FileStore) Get(key string) (string, error) {
	value, ok := s.values[key]
	if !ok || value == "" {
		return "", &ErrKeyNotFound{Key: key}
	}
	return value, nil
}
