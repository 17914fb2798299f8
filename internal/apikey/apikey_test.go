package apikey

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		userKey    string
		configured string
		want       string
		wantErr    bool
	}{
		{"user key wins", "user-key", "env-key", "user-key", false},
		{"user key trimmed", "  user-key  ", "", "user-key", false},
		{"falls back to configured", "", "env-key", "env-key", false},
		{"whitespace user key falls back", "   ", "env-key", "env-key", false},
		{"placeholder is not a key", "", Placeholder, "", true},
		{"nothing resolves", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.userKey, tt.configured)
			if tt.wantErr {
				if !errors.Is(err, ErrMissing) {
					t.Fatalf("expected ErrMissing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasConfiguredKey(t *testing.T) {
	if HasConfiguredKey("") {
		t.Error("empty key reported as configured")
	}
	if HasConfiguredKey(Placeholder) {
		t.Error("placeholder reported as configured")
	}
	if !HasConfiguredKey("real-key") {
		t.Error("real key not reported as configured")
	}
}
