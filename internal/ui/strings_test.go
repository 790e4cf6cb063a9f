package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  padded", 10, "  padded"},
		{"exactly", 7, "exactly"},
		{"a long prompt", 8, "a lon..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Main > Net", 20, "Main > Net"},
		{"Main > Networking > Advanced", 12, "... Advanced"},
		{"abcdef", 2, "ef"},
	}
	for _, tt := range tests {
		if got := truncateLeft(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncateLeft(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRightAndClamp(t *testing.T) {
	if got := padRight("[*]", 5); got != "[*]  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("padRight = %q", got)
	}
	if got := clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp(5,0,3) = %d", got)
	}
	if got := clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp(-1,0,3) = %d", got)
	}
	if got := clamp(2, 0, -1); got != 0 {
		t.Fatalf("clamp(2,0,-1) = %d", got)
	}
}
