package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user_example_com"},
		{"User+123@Example.Com", "User_123_Example_Com"},
		{"abc123", "abc123"},
		{"", ""},
		{"zero0@x.io", "zero0_x_io"},
	}

	for _, tt := range tests {
		if got := EscapeEmail(tt.input); got != tt.want {
			t.Errorf("EscapeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"user@example.com", true},
		{"First.Last@sub.example.org", true},
		{"user@[127.0.0.1]", true},
		{"\"quoted name\"@example.com", true},
		{"user@example", false},
		{"user.example.com", false},
		{"user@@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.input); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestUcFirst(t *testing.T) {
	assert.Equal(t, "Week", UcFirst("week"))
	assert.Equal(t, "Øst", UcFirst("øst"))
	assert.Equal(t, "", UcFirst(""))
	assert.Equal(t, "ABC", UcFirst("ABC"))
}

func TestCamelize(t *testing.T) {
	assert.Equal(t, "dataFooBar", Camelize("data-foo-bar"))
	assert.Equal(t, "weekStart", Camelize("week-start"))
	assert.Equal(t, "plain", Camelize("plain"))
	assert.Equal(t, "trailing-", Camelize("trailing-"))
}

func TestEncodeURI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "week", "week"},
		{"Space and slash", "a b/c", "a%20b%2Fc"},
		{"Parenthetical dropped", "Report (draft).pdf", "Report.pdf"},
		{"Reserved marks kept", "-_.!~*'()", "-_.!~*'()"},
		{"Query characters", "a=1&b=2", "a%3D1%26b%3D2"},
		{"UTF-8", "ø", "%C3%B8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeURI(tt.input))
		})
	}
}

func TestScorePassword(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 5},
		{"aa", 7},
		{"abc", 15},
		{"abc1", 30},
		{"aB1!", 50},
	}

	for _, tt := range tests {
		if got := ScorePassword(tt.input); got != tt.want {
			t.Errorf("ScorePassword(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "veryweak"},
		{"abc1", "weak"},
		{"abcdefghij1", "good"},
		{"aB1!cD2@eF3#", "strong"},
	}

	for _, tt := range tests {
		if got := PasswordStrength(tt.input); got != tt.want {
			t.Errorf("PasswordStrength(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPasswordStrength_CustomCodes(t *testing.T) {
	codes := []string{"1", "2", "3", "4"}
	assert.Equal(t, "2", PasswordStrength("abc1", codes...))
	assert.Equal(t, "weak", PasswordStrength("abc1", "only-one"))
}
