package main

import "testing"

func TestValidatePasscode(t *testing.T) {
	cases := []struct {
		name      string
		pass, rep string
		wantErr   bool
	}{
		{"ok", "1234", "1234", false},
		{"too short", "123", "123", true},
		{"mismatch", "12345", "12346", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePasscode(tc.pass, tc.rep)
			if (err != nil) != tc.wantErr {
				t.Errorf("validatePasscode(%q, %q) err = %v, wantErr %v", tc.pass, tc.rep, err, tc.wantErr)
			}
		})
	}
}
