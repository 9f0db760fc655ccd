package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcamposl/uniwabot-go/internal/department"
)

func TestMatchKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    department.Code
		matched bool
	}{
		{"payment inquiry", "cuánto debo de la mensualidad?", department.Cajas, true},
		{"platform access", "no puedo entrar al aula virtual", department.Plataforma, true},
		{"enrollment papers", "necesito mi certificado de notas", department.Registro, true},
		{"scholarship", "cómo postulo a una beca?", department.Bienestar, true},
		{"library loan", "quiero renovar un libro", department.Biblioteca, true},
		{"without accents", "cuando es la inscripcion?", department.Registro, true},
		{"uppercase", "PROBLEMA CON MI PAGO", department.Cajas, true},
		{"plain greeting", "hola buenos días", department.General, false},
		{"empty message", "", department.General, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, ok := MatchKeyword(tt.message)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestMatchKeywordPrecedenceFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	// "pago" (CAJAS) and "beca" (BIENESTAR) both match; CAJAS comes
	// first in the catalog so it wins.
	code, ok := MatchKeyword("tengo un pago pendiente por mi beca")
	assert.True(t, ok)
	assert.Equal(t, department.Cajas, code)
}
