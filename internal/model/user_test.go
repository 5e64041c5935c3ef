package model

import "testing"

func TestValidUserID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"alice", true},
		{"alice_2024", true},
		{"小明", true},
		{"user-name", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{"ab@c", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},   // 30 runes
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false}, // 31 runes
		{"心心心心心心心心心心心心心心心心心心心心心心心心心心心心心心", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidUserID(tt.id); got != tt.want {
				t.Errorf("ValidUserID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
