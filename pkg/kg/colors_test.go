package kg

import "testing"

func TestNormalizeEntityType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"court", "COURT"},
		{"Court", "COURT"},
		{"COURT", "COURT"},
		{"case number", "CASE_NUMBER"},
		{"case-number", "CASE_NUMBER"},
		{"  other  person ", "OTHER_PERSON"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEntityType(tt.input); got != tt.want {
			t.Errorf("NormalizeEntityType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColorFor(t *testing.T) {
	if got := ColorFor("court"); got != "#bbabf2" {
		t.Errorf("ColorFor(court) = %q", got)
	}
	if got := ColorFor("Case Number"); got != "#fbb1cf" {
		t.Errorf("ColorFor(Case Number) = %q", got)
	}
	if got := ColorFor("SPACESHIP"); got != NeutralColor {
		t.Errorf("unknown type color = %q, want neutral %q", got, NeutralColor)
	}
	if got := ColorFor(""); got != NeutralColor {
		t.Errorf("empty type color = %q, want neutral %q", got, NeutralColor)
	}
}
