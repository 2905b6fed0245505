package user

import "testing"

func TestHasValidToken(t *testing.T) {
	token := "issued-token"

	cases := []struct {
		name  string
		user  User
		probe string
		want  bool
	}{
		{"stored token matches", User{ValidToken: &token}, "issued-token", true},
		{"stored token differs", User{ValidToken: &token}, "stale-token", false},
		{"no stored token", User{}, "issued-token", false},
		{"empty probe never matches", User{ValidToken: new(string)}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.HasValidToken(tc.probe); got != tc.want {
				t.Fatalf("HasValidToken(%q) = %v, want %v", tc.probe, got, tc.want)
			}
		})
	}
}
