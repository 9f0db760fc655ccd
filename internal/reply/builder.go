package reply

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/identity"
)

// Builder assembles outbound messages. The random source is
// injectable so tests can pin the chosen variant.
type Builder struct {
	intn func(n int) int
}

// NewBuilder creates a Builder using the shared random source.
func NewBuilder() *Builder {
	return NewBuilderWithRand(rand.IntN)
}

// NewBuilderWithRand creates a Builder with a custom random int source.
func NewBuilderWithRand(intn func(n int) int) *Builder {
	return &Builder{intn: intn}
}

func (b *Builder) pick(variants []string) string {
	return variants[b.intn(len(variants))]
}

// General answers messages that no department matches.
func (b *Builder) General() string {
	return b.pick(greetings) + " " + b.pick(generalBodies)
}

// DataRequest asks the sender for identity data before the redirect.
func (b *Builder) DataRequest(dept department.Department) string {
	return fmt.Sprintf(`%s Para conectarte con %s, necesito algunos datos.

📝 Por favor envíame en tu siguiente mensaje:

**1. Tu CI** (ej: 1234567)
**2. Tu nombre completo** (ej: Juan Pérez García)
**3. Tu carrera** (ej: Ingeniería de Sistemas)

_Puedes escribir cada dato en una línea separada o separados por comas._

💡 Ejemplo:
%s`, b.pick(greetings), dept.Name, dataFormatExample)
}

// Redirect builds the final message pointing the sender at the
// department, including a wa.me deep link that prefills the inquiry
// and the student's data for the receiving agent.
func (b *Builder) Redirect(dept department.Department, inquiry string, student identity.Student) (string, error) {
	link, err := BuildLink(dept.Phone, deepLinkText(inquiry, student))
	if err != nil {
		return "", err
	}

	var sent string
	if student.Document != "" {
		sent = fmt.Sprintf("\n✅ *Datos enviados:*\n📋 CI: %s\n🎓 Nombre: %s\n📚 Carrera: %s\n",
			student.Document, student.FullName, student.Program)
	}

	variants := []string{
		fmt.Sprintf(`%s %s te voy a conectar con %s.

📋 *%s*
📝 *Tu consulta:* "%s"%s

🔗 *Enlace directo:*
%s

📱 *Número:* %s
⏰ *Horario:* Lun-Vie 8:00-18:00 | Sáb 8:00-12:00`,
			b.pick(greetings), b.pick(transitions), dept.Name, dept.Name, inquiry, sent, link, dept.Phone),

		fmt.Sprintf(`%s %s necesitas comunicarte con %s.

💬 *Tu consulta:* "%s"%s

🔗 %s

📱 *WhatsApp:* %s
*Atención:* L-V 8am-6pm | S 8am-12pm`,
			b.pick(greetings), b.pick(transitions), dept.Name, inquiry, sent, link, dept.Phone),
	}
	return b.pick(variants), nil
}

// deepLinkText is what the student's WhatsApp will prefill when they
// tap the link.
func deepLinkText(inquiry string, student identity.Student) string {
	if student.Document != "" {
		return fmt.Sprintf("🔔 Nueva consulta\n👤 %s\n📋 CI: %s\n📚 %s\n💬 \"%s\"",
			student.FullName, student.Document, student.Program, inquiry)
	}
	return fmt.Sprintf("🔔 Nueva consulta estudiantil\n💬 \"%s\"", inquiry)
}

// Notification is sent to the department's own number when a student
// is redirected, so the agent sees the case before the student writes.
func (b *Builder) Notification(inquiry, studentNumber string, student identity.Student, at time.Time) string {
	var sb strings.Builder
	sb.WriteString("🔔 *Nueva consulta estudiantil*\n\n")

	if student.Document != "" {
		sb.WriteString("👤 *DATOS DEL ESTUDIANTE:*\n")
		fmt.Fprintf(&sb, "📋 CI: %s\n", student.Document)
		fmt.Fprintf(&sb, "🎓 Nombre: %s\n", student.FullName)
		fmt.Fprintf(&sb, "📚 Carrera: %s\n", student.Program)
		fmt.Fprintf(&sb, "📱 WhatsApp: wa.me/%s\n\n", studentNumber)
	} else {
		fmt.Fprintf(&sb, "👤 *Estudiante:* wa.me/%s\n", studentNumber)
	}

	fmt.Fprintf(&sb, "📅 *Fecha/Hora:* %s\n", at.Format("02/01/2006 15:04"))
	fmt.Fprintf(&sb, "💬 *Consulta:* \"%s\"\n\n", inquiry)
	sb.WriteString("_El estudiante ha sido notificado para contactar directamente._")
	return sb.String()
}

// RetryPrompt asks again after a failed identity parse.
func (b *Builder) RetryPrompt() string {
	return b.pick(retryBodies)
}

// Apology is sent when processing fails irrecoverably.
func (b *Builder) Apology() string {
	return b.pick(apologyBodies)
}

// OffHours is sent outside the attendance window.
func (b *Builder) OffHours() string {
	return b.pick(greetings) + " " + b.pick(offHoursBodies)
}

// RateLimited is sent when the per-sender cap is hit.
func (b *Builder) RateLimited() string {
	return b.pick(rateLimitedBodies)
}

// Restart greets a sender whose conversation state was lost or reset.
func (b *Builder) Restart() string {
	return b.pick(greetings) + " " + b.pick(restartBodies)
}

// CareerList answers the "carreras" command with the program catalog.
func (b *Builder) CareerList() string {
	var sb strings.Builder
	sb.WriteString("📚 *CARRERAS DISPONIBLES:*\n\n")
	for i, p := range department.Programs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	sb.WriteString("\n💡 Escribe el nombre de tu carrera tal como aparece en la lista.")
	return sb.String()
}
