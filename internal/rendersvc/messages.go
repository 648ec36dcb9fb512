package rendersvc

import (
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"xplogd-live/internal/mapview"
)

// Los mensajes son google.protobuf.Struct con estas claves:
//
//	handle  string
//	pos     {lon, lat}
//	icon    {path, r, g, b, rotation, opacity, scale, stroke_weight}
//	zoom    number
//	text    string

func CreateRequest(h mapview.Handle, pos mapview.LonLat, icon mapview.Icon) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"handle": string(h),
		"pos":    encodeLonLat(pos),
		"icon":   encodeIcon(icon),
	})
}

func MoveRequest(h mapview.Handle, pos mapview.LonLat) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"handle": string(h), "pos": encodeLonLat(pos)})
}

func IconRequest(h mapview.Handle, icon mapview.Icon) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"handle": string(h), "icon": encodeIcon(icon)})
}

func RemoveRequest(h mapview.Handle) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"handle": string(h)})
}

func CenterRequest(pos mapview.LonLat, zoom int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"pos": encodeLonLat(pos), "zoom": zoom})
}

func RenderRequest(text string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"text": text})
}

func encodeLonLat(p mapview.LonLat) map[string]any {
	return map[string]any{"lon": p.Lon, "lat": p.Lat}
}

func encodeIcon(i mapview.Icon) map[string]any {
	return map[string]any{
		"path":          i.Path,
		"r":             float64(i.Fill.R),
		"g":             float64(i.Fill.G),
		"b":             float64(i.Fill.B),
		"rotation":      i.Rotation,
		"opacity":       i.Opacity,
		"scale":         i.Scale,
		"stroke_weight": i.StrokeWeight,
	}
}

func invalid(format string, args ...any) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

func handleOf(in *structpb.Struct) (mapview.Handle, error) {
	h := in.GetFields()["handle"].GetStringValue()
	if h == "" {
		return "", invalid("missing handle")
	}
	return mapview.Handle(h), nil
}

func lonLatOf(in *structpb.Struct) (mapview.LonLat, error) {
	p := in.GetFields()["pos"].GetStructValue()
	if p == nil {
		return mapview.LonLat{}, invalid("missing pos")
	}
	lon, okLon := number(p, "lon")
	lat, okLat := number(p, "lat")
	if !okLon || !okLat {
		return mapview.LonLat{}, invalid("pos needs numeric lon and lat")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return mapview.LonLat{}, invalid("pos out of range (%v, %v)", lon, lat)
	}
	return mapview.LonLat{Lon: lon, Lat: lat}, nil
}

func iconOf(in *structpb.Struct) (mapview.Icon, error) {
	s := in.GetFields()["icon"].GetStructValue()
	if s == nil {
		return mapview.Icon{}, invalid("missing icon")
	}
	icon := mapview.Icon{Path: s.GetFields()["path"].GetStringValue()}
	icon.Fill.R = channel(s, "r")
	icon.Fill.G = channel(s, "g")
	icon.Fill.B = channel(s, "b")
	icon.Rotation, _ = number(s, "rotation")
	icon.Opacity, _ = number(s, "opacity")
	icon.Scale, _ = number(s, "scale")
	icon.StrokeWeight, _ = number(s, "stroke_weight")
	return icon, nil
}

func number(s *structpb.Struct, key string) (float64, bool) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) {
		return 0, false
	}
	return n.NumberValue, true
}

func channel(s *structpb.Struct, key string) uint8 {
	n, _ := number(s, key)
	return uint8(math.Min(math.Max(n, 0), 255))
}
