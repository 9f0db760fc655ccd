// Package department defines the university department catalog used to
// route student inquiries, plus the list of academic programs used to
// normalize identity data.
package department

import "strings"

// Code identifies a department. The zero value is not valid; use General
// for inquiries that cannot be routed.
type Code string

// Department codes. Order of the catalog determines keyword precedence.
const (
	Cajas      Code = "CAJAS"
	Plataforma Code = "PLATAFORMA"
	Registro   Code = "REGISTRO"
	Bienestar  Code = "BIENESTAR"
	Biblioteca Code = "BIBLIOTECA"

	// General marks inquiries that no department matches.
	General Code = "GENERAL"
)

// Department describes a routing destination.
type Department struct {
	Code        Code
	Name        string
	Phone       string // WhatsApp number in international format, no plus sign
	Keywords    []string
	Description string
}

// catalog lists departments in priority order. When a message matches
// keywords from several departments, the first one in this slice wins.
var catalog = []Department{
	{
		Code:        Cajas,
		Name:        "Departamento de Cajas",
		Phone:       "59177439407",
		Keywords:    []string{"pago", "cuota", "mensualidad", "deuda", "factura", "recibo", "cancelar", "mora"},
		Description: "Pagos, cuotas, mensualidades, facturas",
	},
	{
		Code:        Plataforma,
		Name:        "Soporte de Plataforma",
		Phone:       "59177439408",
		Keywords:    []string{"plataforma", "aula virtual", "moodle", "contraseña", "usuario", "login", "acceso", "sistema"},
		Description: "Acceso a plataforma, aula virtual, problemas técnicos",
	},
	{
		Code:        Registro,
		Name:        "Registro Académico",
		Phone:       "59177439409",
		Keywords:    []string{"inscripción", "matrícula", "certificado", "notas", "kardex", "historial", "documento"},
		Description: "Inscripciones, certificados, documentos académicos",
	},
	{
		Code:        Bienestar,
		Name:        "Bienestar Estudiantil",
		Phone:       "59177439410",
		Keywords:    []string{"beca", "ayuda", "apoyo", "psicología", "orientación", "problema personal"},
		Description: "Becas, apoyo estudiantil, orientación",
	},
	{
		Code:        Biblioteca,
		Name:        "Biblioteca",
		Phone:       "59177439411",
		Keywords:    []string{"libro", "biblioteca", "préstamo", "tesis", "investigación", "bibliografía"},
		Description: "Préstamos de libros, recursos bibliográficos",
	},
}

// All returns the catalog in priority order.
func All() []Department {
	return catalog
}

// Get returns the department for a code.
func Get(code Code) (Department, bool) {
	for _, d := range catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}

// ParseCode maps a free-form string to a catalog code.
// Unrecognized values map to General.
func ParseCode(s string) Code {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := Get(code); ok {
		return code
	}
	return General
}

// IsRoutable reports whether the code points to a real department.
func (c Code) IsRoutable() bool {
	_, ok := Get(c)
	return ok
}

func (c Code) String() string {
	return string(c)
}
