package interview

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"end interview", CommandEndInterview},
		{"End Interview", CommandEndInterview},
		{"  END INTERVIEW.  ", CommandEndInterview},
		{"end the interview!", CommandEndInterview},
		{"4", CommandEndInterview},
		{" 4 ", CommandEndInterview},
		{"I worked on four projects", CommandNone},
		{"my answer mentions end interview in passing", CommandNone},
		{"42", CommandNone},
		{"", CommandNone},
	}

	for _, tt := range tests {
		if got := ParseCommand(tt.input); got != tt.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
