package config

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"both set", "user", "pass", false},
		{"both empty", "", "", false},
		{"username only", "user", "", true},
		{"password only", "", "pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Username: tt.username, Password: tt.password}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
