package department

import "strings"

// Programs lists the academic programs offered by the university.
// Used both to normalize the program a student reports and to detect
// program mentions inside free-form identity messages.
var Programs = []string{
	"Ingeniería de Sistemas",
	"Ingeniería Industrial",
	"Ingeniería Civil",
	"Administración de Empresas",
	"Contaduría Pública",
	"Derecho",
	"Medicina",
	"Psicología",
	"Arquitectura",
	"Comunicación Social",
}

// programFragments are stems that signal a program mention inside a
// longer line, covering abbreviations and misspellings of endings.
var programFragments = []string{
	"ingenier", "medicina", "derecho", "administr", "psicolog",
	"arquitec", "sistem", "civil", "industrial", "comunicac",
	"contadur",
}

// NormalizeProgram maps what a student typed to a catalog program.
// Tries an exact folded match, then a substring match in either
// direction, and finally returns the input unchanged.
func NormalizeProgram(input string) string {
	folded := Fold(input)
	for _, p := range Programs {
		if Fold(p) == folded {
			return p
		}
	}
	for _, p := range Programs {
		fp := Fold(p)
		if len(folded) >= 4 && (strings.Contains(fp, folded) || strings.Contains(folded, fp)) {
			return p
		}
	}
	return input
}

// MentionsProgram reports whether s contains a fragment of any known program.
func MentionsProgram(s string) bool {
	folded := Fold(s)
	for _, frag := range programFragments {
		if strings.Contains(folded, frag) {
			return true
		}
	}
	return false
}
