package registry

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Snapshot is an immutable view of the known-domain lists. It is safe to
// share across concurrent scoring calls.
type Snapshot struct {
	trusted   []string
	malicious []string
}

// NewSnapshot creates a snapshot from trusted and malicious domain lists.
// Domains are lowercased, trimmed and deduplicated; order is preserved.
func NewSnapshot(trusted, malicious []string) *Snapshot {
	return &Snapshot{
		trusted:   normalize(trusted),
		malicious: normalize(malicious),
	}
}

func normalize(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// IsTrusted reports whether the domain exactly matches or is a subdomain of
// a trusted entry
func (s *Snapshot) IsTrusted(domain string) bool {
	return matchesAny(domain, s.trusted)
}

// IsMalicious reports whether the domain exactly matches or is a subdomain
// of a known-malicious entry
func (s *Snapshot) IsMalicious(domain string) bool {
	return matchesAny(domain, s.malicious)
}

func matchesAny(domain string, entries []string) bool {
	for _, entry := range entries {
		if domain == entry || strings.HasSuffix(domain, "."+entry) {
			return true
		}
	}
	return false
}

// Trusted returns the trusted domain list for typosquatting comparison.
// Callers must not modify the returned slice.
func (s *Snapshot) Trusted() []string {
	return s.trusted
}

// Malicious returns the known-malicious domain list.
// Callers must not modify the returned slice.
func (s *Snapshot) Malicious() []string {
	return s.malicious
}

// Registry holds the current known-domain snapshot. Reads and reloads may
// happen concurrently; a scoring call takes one snapshot up front and keeps
// it for the whole call.
type Registry struct {
	snapshot atomic.Pointer[Snapshot]
}

// New creates a registry holding the given snapshot
func New(snapshot *Snapshot) *Registry {
	r := &Registry{}
	r.snapshot.Store(snapshot)
	return r
}

// Snapshot returns the current snapshot
func (r *Registry) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Swap replaces the current snapshot
func (r *Registry) Swap(snapshot *Snapshot) {
	r.snapshot.Store(snapshot)
}

// domainFile is the on-disk format of the known-domain lists
type domainFile struct {
	Trusted   []string `yaml:"trusted"`
	Malicious []string `yaml:"malicious"`
}

// LoadFile reads a known-domain list from a YAML file
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain file: %w", err)
	}

	var file domainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse domain file: %w", err)
	}

	return NewSnapshot(file.Trusted, file.Malicious), nil
}

// DefaultSnapshot returns the built-in domain lists used when no domain file
// is configured
func DefaultSnapshot() *Snapshot {
	return NewSnapshot(
		[]string{
			"google.com", "gmail.com", "microsoft.com", "apple.com", "amazon.com",
			"facebook.com", "twitter.com", "linkedin.com", "instagram.com",
			"github.com", "gitlab.com", "dropbox.com", "yahoo.com", "outlook.com",
			"live.com", "hotmail.com", "paypal.com", "netflix.com", "spotify.com",
		},
		[]string{
			"paypa1.com", "amaz0n.com", "g00gle.com", "micros0ft.com",
			"faceb00k.com", "apple-id.co", "outlook-verify.com",
		},
	)
}

// EmptySnapshot returns a snapshot with no entries. Used as the degraded
// fallback when the configured domain file cannot be loaded.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil)
}
