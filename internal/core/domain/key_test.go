package domain

import "testing"

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"user_abc-123", "user_abc-123"},
		{"../../etc", "etc"},
		{"a/b\\c", "abc"},
		{"user id!", "userid"},
		{"..", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeID(tc.in); got != tc.want {
			t.Fatalf("SanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeGameName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Super Mario Bros", "Super Mario Bros"},
		{"../../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"dir/game", "game"},
		{"..", ""},
		{"/", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeGameName(tc.in); got != tc.want {
			t.Fatalf("SanitizeGameName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
