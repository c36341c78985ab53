package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/dmitrijs2005/mediaup/internal/common"
	pb "github.com/dmitrijs2005/mediaup/internal/proto"
	"github.com/dmitrijs2005/mediaup/internal/server/models"
)

func (s *GRPCServer) Issue(ctx context.Context, req *pb.IssueRequest) (*pb.IssueResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	files := make([]models.FileSpec, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, models.FileSpec{
			LocalID:  f.LocalId,
			MimeType: f.MimeType,
			FileSize: f.FileSize,
			Filename: f.Filename,
		})
	}

	slots, err := s.uploads.Issue(ctx, userID, files)
	if err != nil {
		return nil, s.statusError(ctx, "issue failed", err)
	}

	resp := &pb.IssueResponse{Slots: make([]*pb.Slot, 0, len(slots))}
	for _, sl := range slots {
		resp.Slots = append(resp.Slots, &pb.Slot{
			LocalId:     sl.LocalID,
			StoragePath: sl.StoragePath,
			TransferUrl: sl.TransferURL,
			Token:       sl.Token,
			ExpiresAt:   timestamppb.New(sl.ExpiresAt),
		})
	}
	return resp, nil
}

func (s *GRPCServer) PresignParts(ctx context.Context, req *pb.PartsRequest) (*pb.PartsResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	grant, err := s.uploads.PresignParts(ctx, userID, models.PartsRequest{
		Token:       req.Token,
		UploadID:    req.UploadId,
		TotalSize:   req.TotalSize,
		ChunkSize:   req.ChunkSize,
		PartNumbers: req.PartNumbers,
	})
	if err != nil {
		return nil, s.statusError(ctx, "presign parts failed", err)
	}

	resp := &pb.PartsResponse{
		UploadId:  grant.UploadID,
		Parts:     make([]*pb.Part, 0, len(grant.Parts)),
		ExpiresAt: timestamppb.New(grant.ExpiresAt),
	}
	for _, p := range grant.Parts {
		resp.Parts = append(resp.Parts, &pb.Part{Number: p.Number, Url: p.URL})
	}
	return resp, nil
}

func (s *GRPCServer) Confirm(ctx context.Context, req *pb.ConfirmRequest) (*pb.ConfirmResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	items := make([]models.Upload, 0, len(req.Uploads))
	for _, u := range req.Uploads {
		item := models.Upload{
			StoragePath: u.StoragePath,
			Token:       u.Token,
			Filename:    u.Filename,
			FileSize:    u.FileSize,
			MimeType:    u.MimeType,
			Width:       int(u.Width),
			Height:      int(u.Height),
			UploadID:    u.UploadId,
		}
		for _, p := range u.Parts {
			item.Parts = append(item.Parts, models.CompletedPart{Number: p.Number, ETag: p.Etag})
		}
		items = append(items, item)
	}

	n, err := s.uploads.Confirm(ctx, userID, items)
	if err != nil {
		return nil, s.statusError(ctx, "confirm failed", err)
	}

	return &pb.ConfirmResponse{Recorded: int32(n)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

// statusError maps service errors onto gRPC codes. Internal details are
// logged, not returned.
func (s *GRPCServer) statusError(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
	s.logger.Error(ctx, msg, "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
