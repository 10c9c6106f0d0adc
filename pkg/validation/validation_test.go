package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"get_user_projects", true},
		{"vdr_documents", true},
		{"_private", true},
		{"", false},
		{"1table", false},
		{"projects; drop table users", false},
		{"schema.table", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifier(tt.input))
		})
	}
}

func TestIsKeySafe(t *testing.T) {
	assert.True(t, IsKeySafe("6f1c2a9e-7d4b-4c1a-9f00-1b2c3d4e5f60"))
	assert.True(t, IsKeySafe("P1"))
	assert.False(t, IsKeySafe("P1:user_id:U2"))
	assert.False(t, IsKeySafe("a b"))
	assert.False(t, IsKeySafe(""))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"BearerPrefix", "Bearer abc123", "abc123", true},
		{"LowercasePrefix", "bearer abc123", "abc123", true},
		{"BareToken", "abc123", "abc123", true},
		{"Empty", "", "", false},
		{"WrongScheme", "Basic abc123", "", false},
		{"TooManyParts", "Bearer a b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestTrimAndValidate(t *testing.T) {
	value, ok := TrimAndValidate("  P1 ")
	assert.True(t, ok)
	assert.Equal(t, "P1", value)

	_, ok = TrimAndValidate("   ")
	assert.False(t, ok)
	assert.False(t, IsNotEmpty("\t"))
}
