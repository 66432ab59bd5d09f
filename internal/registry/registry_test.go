package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func TestSnapshotMatching(t *testing.T) {
	snapshot := NewSnapshot([]string{"paypal.com"}, []string{"paypa1.com"})

	testCases := []struct {
		name      string
		domain    string
		trusted   bool
		malicious bool
	}{
		{"exact trusted", "paypal.com", true, false},
		{"trusted subdomain", "www.paypal.com", true, false},
		{"deep trusted subdomain", "secure.mail.paypal.com", true, false},
		{"exact malicious", "paypa1.com", false, true},
		{"malicious subdomain", "login.paypa1.com", false, true},
		{"lookalike is not a subdomain", "notpaypal.com", false, false},
		{"unknown", "example.com", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := snapshot.IsTrusted(tc.domain); got != tc.trusted {
				t.Errorf("IsTrusted(%q) = %t, want %t", tc.domain, got, tc.trusted)
			}
			if got := snapshot.IsMalicious(tc.domain); got != tc.malicious {
				t.Errorf("IsMalicious(%q) = %t, want %t", tc.domain, got, tc.malicious)
			}
		})
	}
}

func TestSnapshotNormalization(t *testing.T) {
	snapshot := NewSnapshot(
		[]string{" PayPal.COM ", "paypal.com", "", "amazon.com"},
		nil,
	)

	want := []string{"paypal.com", "amazon.com"}
	if got := snapshot.Trusted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Trusted() = %v, want %v", got, want)
	}
}

func TestRegistrySwap(t *testing.T) {
	reg := New(NewSnapshot([]string{"paypal.com"}, nil))

	if !reg.Snapshot().IsTrusted("paypal.com") {
		t.Fatal("initial snapshot not visible")
	}

	reg.Swap(NewSnapshot(nil, []string{"paypa1.com"}))

	snapshot := reg.Snapshot()
	if snapshot.IsTrusted("paypal.com") {
		t.Error("old snapshot still visible after swap")
	}
	if !snapshot.IsMalicious("paypa1.com") {
		t.Error("new snapshot not visible after swap")
	}
}

func TestRegistryConcurrentSwap(t *testing.T) {
	reg := New(EmptySnapshot())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Swap(NewSnapshot([]string{"paypal.com"}, []string{"paypa1.com"}))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snapshot := reg.Snapshot()
				if snapshot == nil {
					t.Error("Snapshot returned nil")
					return
				}
				snapshot.IsMalicious("paypa1.com")
			}
		}()
	}
	wg.Wait()
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.yaml")
	content := `trusted:
  - paypal.com
  - Amazon.COM
malicious:
  - paypa1.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	snapshot, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !snapshot.IsTrusted("amazon.com") {
		t.Error("expected amazon.com to be trusted")
	}
	if !snapshot.IsMalicious("paypa1.com") {
		t.Error("expected paypa1.com to be malicious")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for a corrupt file")
	}
}

func TestDefaultSnapshot(t *testing.T) {
	snapshot := DefaultSnapshot()

	if !snapshot.IsTrusted("paypal.com") {
		t.Error("expected paypal.com in the default trusted list")
	}
	if !snapshot.IsMalicious("paypa1.com") {
		t.Error("expected paypa1.com in the default malicious list")
	}
	if len(snapshot.Trusted()) == 0 || len(snapshot.Malicious()) == 0 {
		t.Error("default snapshot must not be empty")
	}
}
