package filestore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/tcms-client/session"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

var (
	_ session.Store      = (*Store)(nil)
	_ session.BatchStore = (*Store)(nil)
)

var (
	ErrPathIsDir          = errors.New("session file is a directory")
	ErrPassphraseRequired = errors.New("session file is sealed and no passphrase was given")
	ErrUnseal             = errors.New("session file could not be unsealed")
)

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

type document struct {
	Values map[session.Key]string `json:"values,omitempty"`
	Sealed *sealedValues          `json:"sealed,omitempty"`
}

type sealedValues struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Box   []byte `json:"box"`
}

// Store persists session fields in a JSON file so a session survives process restarts.
// Every write rewrites the file atomically. With a passphrase the values are sealed with
// NaCl secretbox under an argon2id-derived key.
type Store struct {
	path       string
	passphrase string

	mu     sync.Mutex
	values map[session.Key]string
	salt   []byte
	key    *[keyLength]byte
}

type Option func(*Store)

func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		s.passphrase = passphrase
	}
}

// New opens the session file at path. A missing file is an empty session.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[session.Key]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.readfile(); err != nil {
		return nil, fmt.Errorf("[filestore New] %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(_ context.Context, key session.Key) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, key session.Key, value string) error {
	return s.SetMany(ctx, map[session.Key]string{key: value})
}

// SetMany writes every value with a single file rewrite. On failure the in-memory copy is
// restored so it keeps matching the file.
func (s *Store) SetMany(_ context.Context, values map[session.Key]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := make(map[session.Key]string, len(s.values))
	for k, v := range s.values {
		previous[k] = v
	}
	for key, value := range values {
		s.values[key] = value
	}
	if err := s.writefile(); err != nil {
		s.values = previous
		return err
	}
	return nil
}

func (s *Store) GetMany(_ context.Context, keys ...session.Key) (map[session.Key]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[session.Key]string, len(keys))
	for _, key := range keys {
		if value, ok := s.values[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (s *Store) Remove(_ context.Context, keys ...session.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			delete(s.values, key)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.writefile()
}

func (s *Store) readfile() error {
	finfo, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if finfo.IsDir() {
		return ErrPathIsDir
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if doc.Sealed == nil {
		for k, v := range doc.Values {
			s.values[k] = v
		}
		return nil
	}

	if s.passphrase == "" {
		return ErrPassphraseRequired
	}
	s.salt = doc.Sealed.Salt
	s.key = deriveKey(s.passphrase, s.salt)

	if len(doc.Sealed.Nonce) != nonceLength {
		return ErrUnseal
	}
	var nonce [nonceLength]byte
	copy(nonce[:], doc.Sealed.Nonce)

	plain, ok := secretbox.Open(nil, doc.Sealed.Box, &nonce, s.key)
	if !ok {
		return ErrUnseal
	}
	if err := json.Unmarshal(plain, &s.values); err != nil {
		return fmt.Errorf("decode sealed values: %w", err)
	}
	return nil
}

func (s *Store) writefile() error {
	doc, err := s.encode()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) encode() (document, error) {
	if s.passphrase == "" {
		return document{Values: s.values}, nil
	}

	if s.key == nil {
		s.salt = make([]byte, saltLength)
		if _, err := rand.Read(s.salt); err != nil {
			return document{}, err
		}
		s.key = deriveKey(s.passphrase, s.salt)
	}

	plain, err := json.Marshal(s.values)
	if err != nil {
		return document{}, err
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return document{}, err
	}
	return document{
		Sealed: &sealedValues{
			Salt:  s.salt,
			Nonce: nonce[:],
			Box:   secretbox.Seal(nil, plain, &nonce, s.key),
		},
	}, nil
}

func deriveKey(passphrase string, salt []byte) *[keyLength]byte {
	var key [keyLength]byte
	copy(key[:], argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keyLength))
	return &key
}
