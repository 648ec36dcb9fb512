package tracking

import (
	"strconv"
	"strings"
)

const OfflineMessage = "Offline: no aircraft is being tracked right now."

// InfoText arma el contenido del panel. Es determinista: el mismo estado
// produce siempre el mismo texto.
func InfoText(o *Observation) string {
	if o == nil {
		return OfflineMessage
	}

	var b strings.Builder
	if a := o.Aircraft; a != nil {
		b.WriteString("Aircraft\n")
		b.WriteString("ICAO type: " + a.ICAOType + "\n")
		b.WriteString("Registration: " + a.Registration + "\n")
		if a.Description != "" {
			b.WriteString("Description: " + a.Description + "\n")
		}
	}
	b.WriteString("Tracking\n")
	b.WriteString("Altitude: " + num(o.Altitude) + " feet\n")
	b.WriteString("Coordinates: " + num(o.Latitude) + ", " + num(o.Longitude) + "\n")
	b.WriteString("Track: " + num(o.Track) + "°\n")
	b.WriteString("Ground speed: " + num(o.GroundSpeed) + " knots\n")
	b.WriteString("Air speed: " + num(o.AirSpeed) + " knots\n")
	b.WriteString("Vertical speed: " + num(o.VerticalSpeed) + " fpm")
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
