package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
	pb "github.com/dmitrijs2005/mediaup/internal/proto"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.UploadServiceClient
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewUploadClient connects to the UploadService at endpointURL. Extra dial
// options are appended to the defaults.
func NewUploadClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, dial...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewUploadServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Issue requests one destination per file.
func (s *GRPCClient) Issue(ctx context.Context, files []models.IssueRequest) ([]models.DestinationSlot, error) {
	req := &pb.IssueRequest{Files: make([]*pb.FileSpec, 0, len(files))}
	for _, f := range files {
		req.Files = append(req.Files, &pb.FileSpec{
			LocalId:  f.LocalID,
			MimeType: f.MimeType,
			FileSize: f.FileSize,
			Filename: f.Filename,
		})
	}

	resp, err := s.client.Issue(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	slots := make([]models.DestinationSlot, 0, len(resp.GetSlots()))
	for _, sl := range resp.GetSlots() {
		slots = append(slots, models.DestinationSlot{
			LocalID:     sl.GetLocalId(),
			StoragePath: sl.GetStoragePath(),
			TransferURL: sl.GetTransferUrl(),
			Token:       sl.GetToken(),
			ExpiresAt:   asTime(sl.GetExpiresAt()),
		})
	}
	return slots, nil
}

// PresignParts starts or refreshes a multipart transfer.
func (s *GRPCClient) PresignParts(ctx context.Context, req models.PartsRequest) (models.PartsGrant, error) {
	resp, err := s.client.PresignParts(ctx, &pb.PartsRequest{
		Token:       req.Token,
		UploadId:    req.UploadID,
		TotalSize:   req.TotalSize,
		ChunkSize:   req.ChunkSize,
		PartNumbers: req.PartNumbers,
	})
	if err != nil {
		return models.PartsGrant{}, s.mapError(err)
	}

	grant := models.PartsGrant{
		UploadID:  resp.GetUploadId(),
		Parts:     make([]models.PartTarget, 0, len(resp.GetParts())),
		ExpiresAt: asTime(resp.GetExpiresAt()),
	}
	for _, p := range resp.GetParts() {
		grant.Parts = append(grant.Parts, models.PartTarget{Number: p.GetNumber(), URL: p.GetUrl()})
	}
	return grant, nil
}

// Confirm commits a batch. Any failure rejects the whole batch.
func (s *GRPCClient) Confirm(ctx context.Context, uploads []models.ConfirmItem) error {
	req := &pb.ConfirmRequest{Uploads: make([]*pb.Upload, 0, len(uploads))}
	for _, u := range uploads {
		up := &pb.Upload{
			StoragePath: u.StoragePath,
			Token:       u.Token,
			Filename:    u.Filename,
			FileSize:    u.FileSize,
			MimeType:    u.MimeType,
			Width:       int32(u.Width),
			Height:      int32(u.Height),
			UploadId:    u.UploadID,
		}
		for _, p := range u.Parts {
			up.Parts = append(up.Parts, &pb.CompletedPart{Number: p.Number, Etag: p.ETag})
		}
		req.Uploads = append(req.Uploads, up)
	}

	if _, err := s.client.Confirm(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfirm, s.mapError(err))
	}
	return nil
}

func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
