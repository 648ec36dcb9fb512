package grpcclient

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"xplogd-live/internal/mapview"
	"xplogd-live/internal/observability"
	"xplogd-live/internal/rendersvc"
)

const callTimeout = 5 * time.Second

// GRPCClient es un adaptador de mapa que reenvía cada operación a un
// rendersvc remoto. Los handles se generan aquí y viajan en el request.
type GRPCClient struct {
	conn   *grpc.ClientConn
	logger *slog.Logger
}

func NewGRPCClient(addr string, lg *slog.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn, logger: lg.With("component", "grpcclient", "addr", addr)}, nil
}

func (g *GRPCClient) Close() error {
	return g.conn.Close()
}

func (g *GRPCClient) CreateMarker(pos mapview.LonLat, icon mapview.Icon) mapview.Handle {
	h := mapview.NewHandle()
	g.send(rendersvc.MethodCreateMarker, func() (*structpb.Struct, error) {
		return rendersvc.CreateRequest(h, pos, icon)
	})
	return h
}

func (g *GRPCClient) MoveMarker(h mapview.Handle, pos mapview.LonLat) {
	g.send(rendersvc.MethodMoveMarker, func() (*structpb.Struct, error) {
		return rendersvc.MoveRequest(h, pos)
	})
}

func (g *GRPCClient) SetMarkerIcon(h mapview.Handle, icon mapview.Icon) {
	g.send(rendersvc.MethodSetMarkerIcon, func() (*structpb.Struct, error) {
		return rendersvc.IconRequest(h, icon)
	})
}

func (g *GRPCClient) RemoveMarker(h mapview.Handle) {
	g.send(rendersvc.MethodRemoveMarker, func() (*structpb.Struct, error) {
		return rendersvc.RemoveRequest(h)
	})
}

func (g *GRPCClient) CenterAndZoom(pos mapview.LonLat, zoom int) {
	g.send(rendersvc.MethodCenterAndZoom, func() (*structpb.Struct, error) {
		return rendersvc.CenterRequest(pos, zoom)
	})
}

func (g *GRPCClient) Render(text string) {
	g.send(rendersvc.MethodRender, func() (*structpb.Struct, error) {
		return rendersvc.RenderRequest(text)
	})
}

// send no devuelve error: el reconciliador no los maneja, así que se
// registran y se cuentan.
func (g *GRPCClient) send(method string, build func() (*structpb.Struct, error)) {
	req, err := build()
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		err = g.conn.Invoke(ctx, rendersvc.FullMethod(method), req, &emptypb.Empty{})
		cancel()
	}
	if err != nil {
		observability.AdapterErrors.WithLabelValues("grpc").Inc()
		g.logger.Warn("render call failed", "method", method, "err", err)
	}
}
