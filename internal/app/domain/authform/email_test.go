package authform

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@example.com", true},
		{"ANA@EXAMPLE.COM", true},
		{"first.last@sub.example.com.br", true},
		{`"ana maria"@example.com`, true},
		{"ana@[192.168.0.1]", true},
		{"not-an-email", false},
		{"", false},
		{"ana@example", false},
		{"ana@example.c", false},
		{"ana@@example.com", false},
		{"ana maria@example.com", false},
		{".ana@example.com", false},
		{"ana.@example.com", false},
		{"ana@exa_mple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestRegisterEmailValidation(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerEmailValidation(v))

	type signup struct {
		Email string `validate:"passemail"`
	}
	assert.NoError(t, v.Struct(signup{Email: "ana@example.com"}))
	assert.Error(t, v.Struct(signup{Email: "ana"}))
}
