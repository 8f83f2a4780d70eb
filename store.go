package bcrypt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/absfs/absfs"
	"github.com/google/uuid"
)

// Credential is one stored password hash.
type Credential struct {
	ID      uuid.UUID `json:"id"`
	User    string    `json:"user"`
	Hash    string    `json:"hash"`
	Updated time.Time `json:"updated"`
}

// storeFile is the on-disk JSON layout.
type storeFile struct {
	Credentials []*Credential `json:"credentials"`
}

// CredentialStore keeps user password hashes in a JSON file on an
// absfs.FileSystem. Every mutation is written through immediately. Hashing
// happens outside the lock, so slow verifications do not block each other.
type CredentialStore struct {
	fs     absfs.FileSystem
	path   string
	hasher *Hasher

	mu    sync.RWMutex
	users map[string]*Credential

	dummyOnce sync.Once
	dummy     []byte
}

// OpenStore loads the store at path, starting empty if the file does not
// exist yet. New hashes are produced by hasher.
func OpenStore(fs absfs.FileSystem, path string, hasher *Hasher) (*CredentialStore, error) {
	if fs == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	if path == "" {
		return nil, errors.New("store path cannot be empty")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}

	s := &CredentialStore{
		fs:     fs,
		path:   path,
		hasher: hasher,
		users:  make(map[string]*Credential),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory credentials with the file contents
func (s *CredentialStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.fs.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet, start fresh
			s.users = make(map[string]*Credential)
			return nil
		}
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer file.Close()

	var contents storeFile
	if err := json.NewDecoder(file).Decode(&contents); err != nil {
		return fmt.Errorf("failed to decode credential store: %w", err)
	}

	users := make(map[string]*Credential, len(contents.Credentials))
	for _, c := range contents.Credentials {
		if c == nil || c.User == "" {
			continue
		}
		users[c.User] = c
	}
	s.users = users
	return nil
}

// Save writes the credentials to the file
func (s *CredentialStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *CredentialStore) saveLocked() error {
	contents := storeFile{Credentials: make([]*Credential, 0, len(s.users))}
	for _, user := range s.sortedUsersLocked() {
		contents.Credentials = append(contents.Credentials, s.users[user])
	}

	file, err := s.fs.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create credential store: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&contents); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode credential store: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close credential store: %w", err)
	}
	return nil
}

// Set hashes password and stores it for user, replacing any previous hash.
func (s *CredentialStore) Set(user string, password []byte) (Credential, error) {
	if user == "" {
		return Credential{}, NewValidationError("user", user, "user cannot be empty", nil)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Credential{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.users[user]
	if !ok {
		c = &Credential{ID: uuid.New(), User: user}
		s.users[user] = c
	}
	c.Hash = string(hash)
	c.Updated = time.Now().UTC()
	return *c, s.saveLocked()
}

// Get returns the credential stored for user.
func (s *CredentialStore) Get(user string) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.users[user]
	if !ok {
		return Credential{}, false
	}
	return *c, true
}

// Delete removes user. It reports whether the user existed.
func (s *CredentialStore) Delete(user string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user]; !ok {
		return false, nil
	}
	delete(s.users, user)
	return true, s.saveLocked()
}

// Users returns the stored user names in sorted order.
func (s *CredentialStore) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedUsersLocked()
}

func (s *CredentialStore) sortedUsersLocked() []string {
	users := make([]string, 0, len(s.users))
	for user := range s.users {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// Verify checks password for user. Unknown users are checked against a
// throwaway hash of the configured cost, so they take as long as known ones
// and still report false.
//
// When the password matches and the stored hash uses a different cost or
// version than the hasher, it is replaced. A failure to write the new hash
// is returned alongside true.
func (s *CredentialStore) Verify(user string, password []byte) (bool, error) {
	// Checked before the lookup so known and unknown users fail alike.
	if err := ValidateNoNul(password, "password"); err != nil {
		return false, err
	}
	stored, ok := s.Get(user)
	if !ok {
		Verify(password, s.dummyHash())
		return false, nil
	}

	match, err := Verify(password, []byte(stored.Hash))
	if err != nil || !match {
		return false, err
	}

	rehash, err := s.hasher.NeedsRehash([]byte(stored.Hash))
	if err != nil || !rehash {
		return true, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return true, fmt.Errorf("rehash %s: %w", user, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Leave it alone if the password was changed while we were hashing.
	c, ok := s.users[user]
	if !ok || c.ID != stored.ID || c.Hash != stored.Hash {
		return true, nil
	}
	c.Hash = string(hash)
	c.Updated = time.Now().UTC()
	if err := s.saveLocked(); err != nil {
		return true, fmt.Errorf("rehash %s: %w", user, err)
	}
	return true, nil
}

// dummyHash returns the hash unknown users are checked against. If the
// random source fails it falls back to an all-zero salt, which costs the same
// to verify.
func (s *CredentialStore) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		password := []byte("dummy password")
		hash, err := s.hasher.Hash(password)
		if err != nil {
			cfg := s.hasher.Config()
			rec := &HashRecord{Version: cfg.Version, Cost: cfg.Cost}
			hash, _ = Hashpw(password, rec.SaltString())
		}
		s.dummy = hash
	})
	return s.dummy
}

// Outdated returns the users whose hash will be replaced on their next
// successful login.
func (s *CredentialStore) Outdated() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []string
	for _, user := range s.sortedUsersLocked() {
		if rehash, err := s.hasher.NeedsRehash([]byte(s.users[user].Hash)); err == nil && rehash {
			users = append(users, user)
		}
	}
	return users
}

// MigrateOptions contains options for Migrate
type MigrateOptions struct {
	// DryRun reports what would change without modifying the store
	DryRun bool

	// Verbose enables progress output
	Verbose bool

	// Output receives progress output (default os.Stdout)
	Output io.Writer
}

// MigrateReport lists what Migrate found.
type MigrateReport struct {
	Removed  []string // Users whose hash could not be parsed
	Outdated []string // Users who will be rehashed on next login
}

// Migrate drops credentials whose stored hash no longer parses and reports
// the ones that need rehashing. Hashes cannot be upgraded without the
// password, so outdated entries are only reported.
func (s *CredentialStore) Migrate(opts MigrateOptions) (MigrateReport, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	prefix := ""
	if opts.DryRun {
		prefix = "[DRY RUN] "
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var report MigrateReport
	for _, user := range s.sortedUsersLocked() {
		rehash, err := s.hasher.NeedsRehash([]byte(s.users[user].Hash))
		switch {
		case err != nil:
			report.Removed = append(report.Removed, user)
			if opts.Verbose {
				fmt.Fprintf(out, "%sremoving %s: %v\n", prefix, user, err)
			}
		case rehash:
			report.Outdated = append(report.Outdated, user)
			if opts.Verbose {
				fmt.Fprintf(out, "%s%s needs rehash on next login\n", prefix, user)
			}
		}
	}

	if opts.DryRun || len(report.Removed) == 0 {
		return report, nil
	}
	for _, user := range report.Removed {
		delete(s.users, user)
	}
	return report, s.saveLocked()
}
