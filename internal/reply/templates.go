package reply

// Phrasing variants. Every user-visible message type has at least two
// so consecutive conversations never read identically.

var greetings = []string{
	"Hola! 👋",
	"¡Hola! 😊",
	"¡Buen día!",
	"¡Hola, bienvenido/a!",
	"Hola, gracias por contactarnos 🙂",
}

var transitions = []string{
	"He analizado tu consulta y",
	"Según tu mensaje,",
	"Por lo que veo,",
	"De acuerdo a tu consulta,",
}

var generalBodies = []string{
	`Gracias por contactarnos. Para poder ayudarte mejor, ¿podrías especificar qué necesitas?

Puedo ayudarte con:
• 💰 Pagos y cuotas
• 💻 Problemas con la plataforma
• 📋 Inscripciones y certificados
• 🎓 Becas y apoyo estudiantil
• 📚 Biblioteca

¿En qué área necesitas ayuda?`,

	`¡Bienvenido/a! Estoy aquí para dirigirte al área correcta.

Por favor, indícame si necesitas ayuda con:
• Pagos o mensualidades → Cajas
• Acceso a plataforma virtual → Soporte técnico
• Documentos académicos → Registro
• Apoyo estudiantil → Bienestar
• Recursos bibliográficos → Biblioteca

¿Cuál es tu consulta?`,
}

var offHoursBodies = []string{
	`Nuestro horario de atención es:

📅 Lunes a Viernes: 8:00 - 18:00
📅 Sábados: 8:00 - 12:00

Tu mensaje será atendido en el próximo horario hábil. ¡Gracias! 😊`,

	`En este momento estamos fuera del horario de atención:

📅 Lunes a Viernes: 8:00 - 18:00
📅 Sábados: 8:00 - 12:00

Te responderemos apenas abramos. ¡Gracias por tu paciencia! 🙏`,
}

var rateLimitedBodies = []string{
	"Por favor, espera unos minutos antes de enviar otro mensaje. Gracias por tu comprensión. 🙏",
	"Recibimos varios mensajes tuyos seguidos. Danos unos minutos y vuelve a escribirnos, por favor. 🙏",
}

var retryBodies = []string{
	"❌ No pude extraer todos los datos. Por favor, envíalos en este formato:\n\n" + dataFormatExample,
	"❌ Me faltan datos para conectarte. Envíamelos de nuevo así:\n\n" + dataFormatExample,
}

var apologyBodies = []string{
	"Lo siento, tuve un problema procesando tu mensaje. Por favor, inténtalo de nuevo en unos minutos. 🙏",
	"Disculpa, algo salió mal de nuestro lado. Escríbenos otra vez en unos minutos, por favor. 🙏",
}

var restartBodies = []string{
	"¡Hola! ¿En qué puedo ayudarte?",
	"¡Hola de nuevo! Cuéntame tu consulta y te dirijo al área correcta.",
}

const dataFormatExample = "📝 **Ejemplo correcto:**\n```\n1234567-LP\nJuan Pérez García\nIngeniería de Sistemas\n```\n\nO separados por comas:\n```\n1234567, Juan Pérez, Medicina\n```"
