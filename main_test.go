package main

import "testing"

func TestParseOutputPort(t *testing.T) {

	tests := []struct {
		arg     string
		want    byte
		wantErr bool
	}{
		{"A", 'A', false},
		{"D", 'D', false},
		{"", 0, true},
		{"E", 0, true},
		{"a", 0, true},
		{"AB", 0, true},
	}

	for _, tt := range tests {
		got, err := parseOutputPort(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOutputPort(%q) expected error", tt.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOutputPort(%q) error: %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOutputPort(%q) = %c; want %c", tt.arg, got, tt.want)
		}
	}
}
