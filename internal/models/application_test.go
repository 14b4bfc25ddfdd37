package models

import "testing"

func TestIsValidStatus(t *testing.T) {
	valid := []string{
		"UNCONFIRMED", "DOCUMENT", "FIRST", "SECOND", "APTITUDE",
		"FINAL", "OFFER", "REJECT",
		// legacy aliases stay writable
		"PENDING", "ACCEPTED", "REJECTED",
	}
	for _, s := range valid {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "offer", "HIRED", "unconfirmed", "OFFER ", "NONE"}
	for _, s := range invalid {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true, want false", s)
		}
	}
}
