package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailLocalPart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first and last", "Maria Silva", "maria.silva"},
		{"middle names dropped", "João Carlos de Souza", "joao.souza"},
		{"accents stripped", "José Antônio Ção", "jose.cao"},
		{"single name", "Madonna", "madonna"},
		{"extra whitespace", "  Ana   Paula  ", "ana.paula"},
		{"punctuation removed", "O'Brien D'Angelo", "obrien.dangelo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, emailLocalPart(tt.input))
		})
	}
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pwd, err := generateTempPassword()
		assert.NoError(t, err)
		assert.Len(t, pwd, tempPasswordLength)
		assert.False(t, seen[pwd], "temporary passwords must not repeat")
		seen[pwd] = true
	}
}
