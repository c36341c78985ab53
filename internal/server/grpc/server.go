// Package grpc exposes the upload service over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/mediaup/internal/logging"
	pb "github.com/dmitrijs2005/mediaup/internal/proto"
	"github.com/dmitrijs2005/mediaup/internal/server/models"
)

type uploadSvc interface {
	Issue(ctx context.Context, userID string, files []models.FileSpec) ([]models.Slot, error)
	PresignParts(ctx context.Context, userID string, req models.PartsRequest) (models.PartsGrant, error)
	Confirm(ctx context.Context, userID string, items []models.Upload) (int, error)
}

type GRPCServer struct {
	pb.UnimplementedUploadServiceServer
	address   string
	uploads   uploadSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us uploadSvc, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		uploads:   us,
		jwtSecret: []byte(secretKey),
	}, nil
}

// newServer builds the grpc.Server with the interceptors and the service
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterUploadServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
