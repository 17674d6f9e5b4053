// Package session persists the authenticated operator across restarts: the
// bearer token and the serialized identity, written as an atomic pair into a
// single per-user file (0600) with AES-GCM obfuscation. Not a replacement
// for an OS keychain but avoids plain-text credentials on disk.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sahaj/followup/internal/domain"
)

const fileName = "session.json"

const (
	keyToken    = "token"
	keyIdentity = "identity"
)

// PersistenceError wraps a failure of the underlying store. Callers treat
// the session as absent when they see one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Session is a restored login: the credential plus the identity it belongs
// to. The two are only ever produced together.
type Session struct {
	Token    string
	Identity domain.Identity
}

// Store owns the persisted session file. The directory is injectable so
// tests can point it at a scratch location.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir selects the per-user
// config directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, &PersistenceError{Op: "locate", Err: err}
		}
		dir = filepath.Join(base, "followup")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, &PersistenceError{Op: "mkdir", Err: err}
	}
	return &Store{dir: dir}, nil
}

type sessionFile struct {
	Keys map[string]string `json:"keys"` // key -> base64(ciphertext)
}

// Login stores the credential and identity as one write. If the write fails
// neither key is applied and the caller must treat the login as not done.
func (s *Store) Login(token string, id domain.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return &PersistenceError{Op: "encode identity", Err: err}
	}
	tokCt, err := encrypt([]byte(token))
	if err != nil {
		return &PersistenceError{Op: "seal token", Err: err}
	}
	idCt, err := encrypt(raw)
	if err != nil {
		return &PersistenceError{Op: "seal identity", Err: err}
	}
	sf := sessionFile{Keys: map[string]string{
		keyToken:    base64.StdEncoding.EncodeToString(tokCt),
		keyIdentity: base64.StdEncoding.EncodeToString(idCt),
	}}
	if err := s.save(sf); err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}
	return nil
}

// Logout clears both keys by removing the file. A missing file already means
// "no session", so logout always succeeds locally.
func (s *Store) Logout() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return &PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// Restore reads the persisted pair. If either key is missing or fails to
// decode the result is (nil, nil): no session, never a partially hydrated
// identity. Only unexpected I/O failures surface as errors.
func (s *Store) Restore() (*Session, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "read", Err: err}
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil
	}
	token, ok := decodeKey(sf, keyToken)
	if !ok || len(token) == 0 {
		return nil, nil
	}
	rawID, ok := decodeKey(sf, keyIdentity)
	if !ok {
		return nil, nil
	}
	var id domain.Identity
	if err := json.Unmarshal(rawID, &id); err != nil {
		return nil, nil
	}
	if id.ID == 0 {
		return nil, nil
	}
	return &Session{Token: string(token), Identity: id}, nil
}

func decodeKey(sf sessionFile, key string) ([]byte, bool) {
	enc, ok := sf.Keys[key]
	if !ok {
		return nil, false
	}
	ct, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, false
	}
	pt, err := decrypt(ct)
	if err != nil {
		return nil, false
	}
	return pt, true
}

func (s *Store) path() string { return filepath.Join(s.dir, fileName) }

func (s *Store) save(sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func masterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("followup-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
