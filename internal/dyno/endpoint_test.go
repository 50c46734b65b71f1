package dyno

import (
	"strings"
	"testing"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"bare host", "worker1", 1778, "worker1:1778"},
		{"explicit port wins", "worker1:9999", 1778, "worker1:9999"},
		{"whitespace trimmed", "  gpu002  ", 1778, "gpu002:1778"},
		{"ip literal", "10.0.0.5", 1778, "10.0.0.5:1778"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHost(tt.host, tt.port)
			if err != nil {
				t.Fatalf("NormalizeHost returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeHost(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
			}
		})
	}
}

func TestNormalizeHostRejectsEmpty(t *testing.T) {
	if _, err := NormalizeHost("   ", 1778); err == nil {
		t.Fatal("expected error for blank host")
	}
}

func TestNormalizeHosts(t *testing.T) {
	got, err := NormalizeHosts([]string{"a", "b:2000", "c"}, 1778)
	if err != nil {
		t.Fatalf("NormalizeHosts returned error: %v", err)
	}
	want := []string{"a:1778", "b:2000", "c:1778"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeHostsRejectsDuplicates(t *testing.T) {
	_, err := NormalizeHosts([]string{"worker1", "worker1:1778"}, 1778)
	if err == nil {
		t.Fatal("expected duplicate host error")
	}
	if !strings.Contains(err.Error(), "worker1:1778") {
		t.Fatalf("error should name the duplicate, got %v", err)
	}
}

func TestNormalizeHostsRejectsEmptyList(t *testing.T) {
	if _, err := NormalizeHosts(nil, 1778); err == nil {
		t.Fatal("expected error for empty host list")
	}
}
