package config

import "testing"

func TestSMTPConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		smtp SMTPConfig
		want bool
	}{
		{"fully configured", SMTPConfig{Address: "smtp.gmail.com:587", Host: "smtp.gmail.com", From: "shop@bookmart.test", Password: "secret"}, true},
		{"no password still enabled", SMTPConfig{Address: "localhost:1025", From: "shop@bookmart.test"}, true},
		{"empty", SMTPConfig{}, false},
		{"address only", SMTPConfig{Address: "smtp.gmail.com:587"}, false},
		{"sender only", SMTPConfig{From: "shop@bookmart.test"}, false},
	}

	for _, tc := range cases {
		if got := tc.smtp.Enabled(); got != tc.want {
			t.Errorf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" http://localhost:4200 ,, https://bookmart.test ")
	if len(got) != 2 || got[0] != "http://localhost:4200" || got[1] != "https://bookmart.test" {
		t.Fatalf("unexpected origins: %v", got)
	}
}
