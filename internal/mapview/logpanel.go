package mapview

import (
	"log/slog"
	"strings"
)

// LogPanel escribe el panel en el log estructurado, sólo cuando cambia.
type LogPanel struct {
	logger *slog.Logger
	last   string
}

func NewLogPanel(lg *slog.Logger) *LogPanel {
	return &LogPanel{logger: lg.With("component", "panel")}
}

func (p *LogPanel) Render(text string) {
	if text == p.last {
		return
	}
	p.last = text
	p.logger.Info("panel: updated", "lines", strings.Split(text, "\n"))
}
