package tracker

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var (
	// ErrNotConfigured is returned when a pop is requested without a session.
	ErrNotConfigured = errors.New("tracker session not configured")
	// ErrRejected is returned when the tracker answers with an error status.
	ErrRejected = errors.New("tracker rejected request")
)

// Session identifies a tracker instance and the password that allows
// changing it.
type Session struct {
	Instance string `yaml:"instance" json:"instance"` // instance URL or bare id
	Password string `yaml:"password" json:"-"`
}

// InstanceID returns the last path segment of Instance.
func (s Session) InstanceID() string {
	inst := strings.TrimRight(strings.TrimSpace(s.Instance), "/")
	if i := strings.LastIndexByte(inst, '/'); i >= 0 {
		return inst[i+1:]
	}
	return inst
}

// Configured reports whether both instance and password are set.
func (s Session) Configured() bool {
	return s.InstanceID() != "" && s.Password != ""
}

// Fingerprint returns a short stable digest of the password for logs.
func (s Session) Fingerprint() string {
	return Fingerprint(s.Password)
}

// Fingerprint hashes a credential so logs can correlate it without
// revealing it. Empty input yields "-".
func Fingerprint(secret string) string {
	if secret == "" {
		return "-"
	}
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}
