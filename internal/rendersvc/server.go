// Package rendersvc expone por gRPC una superficie de mapa, para que un
// tracker en otra máquina pinte sobre esta capa.
package rendersvc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"xplogd-live/internal/mapview"
)

const ServiceName = "xplogd.render.v1.MapView"

const (
	MethodCreateMarker  = "CreateMarker"
	MethodMoveMarker    = "MoveMarker"
	MethodSetMarkerIcon = "SetMarkerIcon"
	MethodRemoveMarker  = "RemoveMarker"
	MethodCenterAndZoom = "CenterAndZoom"
	MethodRender        = "Render"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Surface es donde se aplican las operaciones; el handle lo elige el
// cliente. *mapview.Layer la implementa.
type Surface interface {
	Put(h mapview.Handle, pos mapview.LonLat, icon mapview.Icon)
	MoveMarker(h mapview.Handle, pos mapview.LonLat)
	SetMarkerIcon(h mapview.Handle, icon mapview.Icon)
	RemoveMarker(h mapview.Handle)
	CenterAndZoom(pos mapview.LonLat, zoom int)
	Render(text string)
}

type MapViewServer interface {
	CreateMarker(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	MoveMarker(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	SetMarkerIcon(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RemoveMarker(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	CenterAndZoom(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Render(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

type Server struct {
	surface Surface
	logger  *slog.Logger
}

func NewServer(surface Surface, lg *slog.Logger) *Server {
	return &Server{surface: surface, logger: lg.With("component", "rendersvc")}
}

// Register da de alta el servicio y el health check estándar en g.
func (s *Server) Register(g *grpc.Server) *health.Server {
	g.RegisterService(&serviceDesc, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(g, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return hs
}

func (s *Server) CreateMarker(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	h, err := handleOf(in)
	if err != nil {
		return nil, err
	}
	pos, err := lonLatOf(in)
	if err != nil {
		return nil, err
	}
	icon, err := iconOf(in)
	if err != nil {
		return nil, err
	}
	s.surface.Put(h, pos, icon)
	s.logger.Debug("marker created", "handle", h)
	return &emptypb.Empty{}, nil
}

func (s *Server) MoveMarker(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	h, err := handleOf(in)
	if err != nil {
		return nil, err
	}
	pos, err := lonLatOf(in)
	if err != nil {
		return nil, err
	}
	s.surface.MoveMarker(h, pos)
	return &emptypb.Empty{}, nil
}

func (s *Server) SetMarkerIcon(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	h, err := handleOf(in)
	if err != nil {
		return nil, err
	}
	icon, err := iconOf(in)
	if err != nil {
		return nil, err
	}
	s.surface.SetMarkerIcon(h, icon)
	return &emptypb.Empty{}, nil
}

func (s *Server) RemoveMarker(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	h, err := handleOf(in)
	if err != nil {
		return nil, err
	}
	s.surface.RemoveMarker(h)
	s.logger.Debug("marker removed", "handle", h)
	return &emptypb.Empty{}, nil
}

func (s *Server) CenterAndZoom(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	pos, err := lonLatOf(in)
	if err != nil {
		return nil, err
	}
	zoom, ok := number(in, "zoom")
	if !ok || zoom < 0 {
		return nil, invalid("zoom must be a non-negative number")
	}
	s.surface.CenterAndZoom(pos, int(zoom))
	return &emptypb.Empty{}, nil
}

func (s *Server) Render(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	s.surface.Render(in.GetFields()["text"].GetStringValue())
	return &emptypb.Empty{}, nil
}

type unaryMethod func(MapViewServer, context.Context, *structpb.Struct) (*emptypb.Empty, error)

func unary(name string, fn unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			call := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(MapViewServer), ctx, req.(*structpb.Struct))
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, call)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MapViewServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateMarker, MapViewServer.CreateMarker),
		unary(MethodMoveMarker, MapViewServer.MoveMarker),
		unary(MethodSetMarkerIcon, MapViewServer.SetMarkerIcon),
		unary(MethodRemoveMarker, MapViewServer.RemoveMarker),
		unary(MethodCenterAndZoom, MapViewServer.CenterAndZoom),
		unary(MethodRender, MapViewServer.Render),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "xplogd/render/v1/mapview.proto",
}
