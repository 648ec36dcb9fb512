package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ContentType es el MIME con el que el plugin de X-Plane envía cada frame.
const ContentType = "application/vnd.xplogd.serialized"

// Versión de protocolo soportada.
const ProtocolVersion = "1"

// frameFields: versión + 9 campos + pieza vacía por el '\n' final.
const frameFields = 11

var (
	ErrFrameLength = errors.New("codec: wrong number of fields")
	ErrVersion     = errors.New("codec: unsupported protocol version")
	ErrTrailer     = errors.New("codec: missing trailing newline")
	ErrField       = errors.New("codec: invalid field")
)

// Frame es un reporte crudo del plugin, en unidades SI.
// Frame = "1\n" icao_type \n registration \n lat \n lon \n alt_m \n
// track_deg \n gs_ms \n tas_ms \n vs_ms \n
type Frame struct {
	ICAOType        string
	Registration    string
	Latitude        float64
	Longitude       float64
	AltitudeM       float64
	TrackDeg        float64
	GroundSpeedMS   float64
	AirSpeedMS      float64
	VerticalSpeedMS float64
}

func ParseXplogd(data []byte) (Frame, error) {
	pieces := strings.Split(string(data), "\n")
	if len(pieces) != frameFields {
		return Frame{}, fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(pieces), frameFields)
	}
	if pieces[0] != ProtocolVersion {
		return Frame{}, fmt.Errorf("%w: %q", ErrVersion, pieces[0])
	}
	if pieces[10] != "" {
		return Frame{}, ErrTrailer
	}

	f := Frame{ICAOType: pieces[1], Registration: pieces[2]}
	nums := []struct {
		name string
		dst  *float64
	}{
		{"latitude", &f.Latitude},
		{"longitude", &f.Longitude},
		{"altitude", &f.AltitudeM},
		{"track", &f.TrackDeg},
		{"ground_speed", &f.GroundSpeedMS},
		{"air_speed", &f.AirSpeedMS},
		{"vertical_speed", &f.VerticalSpeedMS},
	}
	for i, n := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(pieces[3+i]), 64)
		if err != nil {
			return Frame{}, fmt.Errorf("%w %s: %v", ErrField, n.name, err)
		}
		*n.dst = v
	}
	return f, nil
}

// BuildXplogd arma un frame tal como lo manda el plugin.
func BuildXplogd(f Frame) []byte {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	parts := []string{
		ProtocolVersion, f.ICAOType, f.Registration,
		num(f.Latitude), num(f.Longitude), num(f.AltitudeM), num(f.TrackDeg),
		num(f.GroundSpeedMS), num(f.AirSpeedMS), num(f.VerticalSpeedMS),
		"",
	}
	return []byte(strings.Join(parts, "\n"))
}
