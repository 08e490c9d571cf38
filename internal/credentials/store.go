package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ansrun/ansrun/internal/logging"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v3"
)

// Store looks up stored credentials by their opaque identifier.
// A blank or unknown identifier yields (nil, nil): the invocation then simply
// runs without credential flags.
type Store interface {
	Find(id string) (Credential, error)
}

// fileEntry is one record in the credentials YAML file. Exactly one of
// password, private_key, or private_key_file must be set; entries carrying
// any other shape are skipped as unsupported.
type fileEntry struct {
	ID             string `yaml:"id" validate:"required"`
	Username       string `yaml:"username" validate:"required"`
	Password       Secret `yaml:"password,omitempty"`
	PrivateKey     Secret `yaml:"private_key,omitempty"`
	PrivateKeyFile string `yaml:"private_key_file,omitempty"`
}

// FileStore is a Store backed by a YAML credentials file, loaded once.
type FileStore struct {
	entries map[string]Credential
}

// LoadFileStore reads and validates the credentials file at path.
// Private key material is parsed at load time so a corrupt key fails here,
// with the key identified by its entry ID, never by its content.
func LoadFileStore(path string, verbosity int) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file %s: %w", path, err)
	}
	return parseFileStore(data, path, verbosity)
}

func parseFileStore(data []byte, path string, verbosity int) (*FileStore, error) {
	var entries []fileEntry
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing credentials file %s: %w", path, err)
	}

	validate := validator.New()
	store := &FileStore{entries: make(map[string]Credential, len(entries))}

	for _, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("credentials file %s: entry %q: %w", path, entry.ID, err)
		}
		if _, exists := store.entries[entry.ID]; exists {
			return nil, fmt.Errorf("credentials file %s: duplicate entry %q", path, entry.ID)
		}

		cred, err := entry.credential()
		if err != nil {
			return nil, fmt.Errorf("credentials file %s: entry %q: %w", path, entry.ID, err)
		}
		if cred == nil {
			// Unsupported shape; treated as "no match" rather than an error.
			logging.Debug(verbosity, "skipping credentials entry %q: no usable secret material", entry.ID)
			continue
		}
		store.entries[entry.ID] = cred
	}

	return store, nil
}

// credential classifies an entry into one of the credential variants.
// Returns (nil, nil) for shapes the invocation core does not understand.
func (e fileEntry) credential() (Credential, error) {
	set := 0
	if e.Password != "" {
		set++
	}
	if e.PrivateKey != "" {
		set++
	}
	if e.PrivateKeyFile != "" {
		set++
	}
	if set > 1 {
		return nil, errors.New("password, private_key, and private_key_file are mutually exclusive")
	}

	switch {
	case e.Password != "":
		return Password{User: e.Username, Password: e.Password}, nil
	case e.PrivateKey != "":
		if err := checkKeyMaterial([]byte(e.PrivateKey.Plain())); err != nil {
			return nil, err
		}
		return PrivateKey{User: e.Username, Key: e.PrivateKey}, nil
	case e.PrivateKeyFile != "":
		material, err := os.ReadFile(e.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading private key file: %w", err)
		}
		if err := checkKeyMaterial(material); err != nil {
			return nil, err
		}
		return PrivateKey{User: e.Username, Key: Secret(material)}, nil
	}
	return nil, nil
}

// checkKeyMaterial verifies the key parses as an SSH private key without ever
// placing the material in the error.
func checkKeyMaterial(material []byte) error {
	if _, err := ssh.ParseRawPrivateKey(material); err != nil {
		var passphraseErr *ssh.PassphraseMissingError
		if errors.As(err, &passphraseErr) {
			// Encrypted keys are stored as-is; the runner's ssh-agent
			// integration handles the passphrase.
			return nil
		}
		return errors.New("private key is not a valid SSH key")
	}
	return nil
}

// Find returns the credential stored under id, or (nil, nil) when id is
// blank or unknown.
func (s *FileStore) Find(id string) (Credential, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	cred, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return cred, nil
}
