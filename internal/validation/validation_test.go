package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Title    string `json:"title,omitempty" validate:"max=10"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input sample
		want  map[string][]string
	}{
		{
			name:  "valid",
			input: sample{Name: "Ann", Email: "ann@x.com", Password: "secret1"},
		},
		{
			name:  "all missing",
			input: sample{},
			want: map[string][]string{
				"name":     {"The name field is required."},
				"email":    {"The email field is required."},
				"password": {"The password field is required."},
			},
		},
		{
			name:  "bad email and short password",
			input: sample{Name: "Ann", Email: "nope", Password: "123"},
			want: map[string][]string{
				"email":    {"The email field must be a valid email address."},
				"password": {"The password field must be at least 6 characters."},
			},
		},
		{
			name:  "too long, counted in characters",
			input: sample{Name: "Ann", Email: "ann@x.com", Password: "secret1", Title: strings.Repeat("é", 11)},
			want: map[string][]string{
				"title": {"The title field must not be greater than 10 characters."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := v.Struct(tt.input)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, fields)
				return
			}
			assert.Equal(t, tt.want, map[string][]string(fields))
		})
	}
}

func TestValidator_Struct_NotAStruct(t *testing.T) {
	_, err := New().Struct("nope")
	assert.Error(t, err)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "The completed field must be true or false.", Message("completed", "boolean", ""))
	assert.Equal(t, "The email has already been taken.", Message("email", "unique", ""))
	assert.Equal(t, "The first name field is required.", Message("first_name", "required", ""))
	assert.Equal(t, "The x field is invalid.", Message("x", "oneof", ""))
}
