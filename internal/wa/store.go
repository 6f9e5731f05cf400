package wa

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sessionNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidSessionName reports whether name is safe to use as a credential
// database filename.
func ValidSessionName(name string) bool {
	return sessionNameRe.MatchString(name)
}

// EnsureStoreDir creates the credential directory if absent.
func EnsureStoreDir(storeDir string) error {
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return fmt.Errorf("failed to ensure credential directory: %w", err)
	}
	return nil
}

// ListSessions returns the session names with a credential database under
// storeDir. A missing directory is an empty list, not an error.
func ListSessions(storeDir string) ([]string, error) {
	entries, err := os.ReadDir(storeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		sessions = append(sessions, strings.TrimSuffix(entry.Name(), ".db"))
	}
	return sessions, nil
}

// DeleteSession removes the credential database for name. Used after a
// terminal logout, when the credentials are no longer valid anyway.
func DeleteSession(storeDir, name string) error {
	if !ValidSessionName(name) {
		return fmt.Errorf("invalid session name %q", name)
	}

	err := os.Remove(filepath.Join(storeDir, name+".db"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
