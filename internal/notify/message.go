package notify

import (
	"fmt"
	"strings"
	"time"

	"immunotrack/internal/models"
)

// Call-to-action strings appended to every notification, keyed by severity.
const (
	ctaCritical = "Ação necessária: Verificar o refrigerador imediatamente!"
	ctaWarning  = "Ação necessária: Verificar o sensor assim que possível."
	ctaInfo     = "Nenhuma ação necessária - alerta de teste."
)

func callToAction(sev models.Severity) string {
	switch sev {
	case models.SeverityCritical:
		return ctaCritical
	case models.SeverityWarning:
		return ctaWarning
	default:
		return ctaInfo
	}
}

// Subject builds the notification subject line.
func Subject(a models.Alert) string {
	return fmt.Sprintf("ImmunoTrack - %s - %s", a.Type, a.Severity)
}

// RenderText builds the plain-text notification body.
func RenderText(a models.Alert) string {
	var b strings.Builder
	b.WriteString("ALERTA IMMUNOTRACK\n\n")
	fmt.Fprintf(&b, "Tipo: %s\n", a.Type)
	fmt.Fprintf(&b, "Sensor: %s\n", a.SensorID)
	if a.Temperature != nil {
		fmt.Fprintf(&b, "Temperatura: %.1f°C\n", *a.Temperature)
	}
	fmt.Fprintf(&b, "Severidade: %s\n", a.Severity)
	fmt.Fprintf(&b, "Mensagem: %s\n", a.Message)
	fmt.Fprintf(&b, "Horário: %s\n\n", a.Timestamp.Format(time.RFC3339))
	b.WriteString(callToAction(a.Severity))
	return b.String()
}

// RenderHTML builds the HTML notification body used by channels that accept
// rich content.
func RenderHTML(a models.Alert) string {
	var b strings.Builder
	b.WriteString("<h2>ALERTA IMMUNOTRACK</h2>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Tipo:</strong> %s</li>", a.Type)
	fmt.Fprintf(&b, "<li><strong>Sensor:</strong> %s</li>", a.SensorID)
	if a.Temperature != nil {
		fmt.Fprintf(&b, "<li><strong>Temperatura:</strong> %.1f°C</li>", *a.Temperature)
	}
	fmt.Fprintf(&b, "<li><strong>Severidade:</strong> %s</li>", a.Severity)
	fmt.Fprintf(&b, "<li><strong>Mensagem:</strong> %s</li>", a.Message)
	fmt.Fprintf(&b, "<li><strong>Horário:</strong> %s</li>", a.Timestamp.Format(time.RFC3339))
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><em>%s</em></p>", callToAction(a.Severity))
	return b.String()
}
