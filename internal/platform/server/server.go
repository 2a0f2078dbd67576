package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/adapters/grpc/staffingv1"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	log        logrus.FieldLogger
}

// New は listenAddr で staffing を提供する gRPC サーバーを生成します。すべての unary 呼び出しは log に出力されます。
func New(listenAddr string, staffing staffingv1.StaffingServiceServer, log logrus.FieldLogger, opts ...grpc.ServerOption) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryLoggingInterceptor(log))}, opts...)
	srv := grpc.NewServer(opts...)
	staffingv1.RegisterStaffingServiceServer(srv, staffing)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		log:        log,
	}
}

// Run は設定されたアドレスで待ち受け、ctx がキャンセルされるまで処理した後にグレースフルに停止します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は ctx がキャンセルされるまで lis で処理します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.grpcServer.GracefulStop()
		case <-stopped:
		}
	}()

	s.log.WithField("addr", lis.Addr().String()).Info("gRPC server listening")

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop は処理中の呼び出しの完了を待ってからサーバーを停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
