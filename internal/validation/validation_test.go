package validation

import (
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "张伟", false},
		{"empty", "", true},
		{"whitespace_only", "   ", true},
		{"tab_newline", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired("username", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMaxLength(t *testing.T) {
	// Rune count, not byte count
	if err := ValidateMaxLength("name", strings.Repeat("审", 50), 50); err != nil {
		t.Errorf("Expected 50 runes to pass a max of 50, got %v", err)
	}
	err := ValidateMaxLength("name", strings.Repeat("审", 51), 50)
	if err == nil {
		t.Error("Expected 51 runes to fail a max of 50")
	}
	if err != nil && err.Field != "name" {
		t.Errorf("error.Field = %q, want name", err.Field)
	}
}

func TestValidateMinLength(t *testing.T) {
	if err := ValidateMinLength("password", "123456", 6); err != nil {
		t.Errorf("Expected 6 chars to pass a min of 6, got %v", err)
	}
	if err := ValidateMinLength("password", "12345", 6); err == nil {
		t.Error("Expected 5 chars to fail a min of 6")
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"lower_bound", 0, false},
		{"upper_bound", 24, false},
		{"half_hour", 2.5, false},
		{"negative", -1, true},
		{"too_large", 24.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("hours", tt.value, 0, 24)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "2026-08-31", false},
		{"not_a_date", "yesterday", true},
		{"wrong_format", "31/08/2026", true},
		{"impossible_day", "2026-02-30", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate("date", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	if c.HasErrors() {
		t.Error("Expected fresh collector to have no errors")
	}

	c.Add(nil)
	if c.HasErrors() {
		t.Error("Expected nil add to be ignored")
	}

	c.Add(ValidateRequired("username", ""))
	c.Add(ValidateRange("hours", 30, 0, 24))
	if !c.HasErrors() {
		t.Error("Expected collector to have errors")
	}
	if len(c.Errors()) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(c.Errors()))
	}
}
