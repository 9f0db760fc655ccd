package reply

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/identity"
)

// fixedBuilder always picks the first variant.
func fixedBuilder() *Builder {
	return NewBuilderWithRand(func(int) int { return 0 })
}

func testStudent() identity.Student {
	return identity.Student{
		Document: "1234567",
		FullName: "Juan Pérez García",
		Program:  "Ingeniería de Sistemas",
	}
}

func TestGeneralMentionsAllAreas(t *testing.T) {
	t.Parallel()

	msg := fixedBuilder().General()
	assert.Contains(t, msg, "Pagos")
	assert.Contains(t, msg, "plataforma")
	assert.Contains(t, msg, "Biblioteca")
}

func TestDataRequestNamesDepartment(t *testing.T) {
	t.Parallel()

	dept, _ := department.Get(department.Cajas)
	msg := fixedBuilder().DataRequest(dept)

	assert.Contains(t, msg, "Departamento de Cajas")
	assert.Contains(t, msg, "Tu CI")
	assert.Contains(t, msg, "nombre completo")
	assert.Contains(t, msg, "carrera")
	assert.NotContains(t, msg, "%!s")
}

func TestRedirectWithStudentData(t *testing.T) {
	t.Parallel()

	dept, _ := department.Get(department.Cajas)
	msg, err := fixedBuilder().Redirect(dept, "cuánto debo?", testStudent())
	require.NoError(t, err)

	assert.Contains(t, msg, dept.Name)
	assert.Contains(t, msg, `"cuánto debo?"`)
	assert.Contains(t, msg, "Datos enviados")
	assert.Contains(t, msg, "1234567")
	assert.Contains(t, msg, "https://wa.me/"+dept.Phone+"?text=")
}

func TestRedirectWithoutStudentData(t *testing.T) {
	t.Parallel()

	dept, _ := department.Get(department.Biblioteca)
	msg, err := fixedBuilder().Redirect(dept, "busco una tesis", identity.Student{})
	require.NoError(t, err)

	assert.NotContains(t, msg, "Datos enviados")
	assert.Contains(t, msg, "https://wa.me/"+dept.Phone)
}

func TestNotificationWithStudentData(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	msg := fixedBuilder().Notification("cuánto debo?", "59170000001", testStudent(), at)

	assert.Contains(t, msg, "DATOS DEL ESTUDIANTE")
	assert.Contains(t, msg, "CI: 1234567")
	assert.Contains(t, msg, "wa.me/59170000001")
	assert.Contains(t, msg, "02/03/2026 10:30")
	assert.Contains(t, msg, `"cuánto debo?"`)
}

func TestNotificationWithoutStudentData(t *testing.T) {
	t.Parallel()

	msg := fixedBuilder().Notification("hola", "59170000001", identity.Student{}, time.Now())
	assert.NotContains(t, msg, "DATOS DEL ESTUDIANTE")
	assert.Contains(t, msg, "wa.me/59170000001")
}

func TestCareerListNumbersAllPrograms(t *testing.T) {
	t.Parallel()

	msg := fixedBuilder().CareerList()
	for _, p := range department.Programs {
		assert.Contains(t, msg, p)
	}
	assert.Contains(t, msg, "1. ")
	assert.Contains(t, msg, "10. ")
}

func TestEveryMessageTypeHasVariants(t *testing.T) {
	t.Parallel()

	for name, variants := range map[string][]string{
		"greetings":   greetings,
		"transitions": transitions,
		"general":     generalBodies,
		"offHours":    offHoursBodies,
		"rateLimited": rateLimitedBodies,
		"retry":       retryBodies,
		"apology":     apologyBodies,
		"restart":     restartBodies,
	} {
		assert.GreaterOrEqual(t, len(variants), 2, "variant set %s", name)
	}
}

func TestVariantSelectionUsesRand(t *testing.T) {
	t.Parallel()

	first := NewBuilderWithRand(func(int) int { return 0 }).RateLimited()
	second := NewBuilderWithRand(func(n int) int { return n - 1 }).RateLimited()
	assert.NotEqual(t, first, second)
}

func TestFixedNoticesNotEmpty(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	for _, msg := range []string{b.OffHours(), b.RateLimited(), b.RetryPrompt(), b.Apology(), b.Restart()} {
		assert.NotEmpty(t, strings.TrimSpace(msg))
	}
}
