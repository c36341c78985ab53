package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/logging"
	pb "github.com/dmitrijs2005/mediaup/internal/proto"
	"github.com/dmitrijs2005/mediaup/internal/server/auth"
	"github.com/dmitrijs2005/mediaup/internal/server/models"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:0", logging.Noop, &fakeUploads{}, "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:99999", logging.Noop, &fakeUploads{}, "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error (constructor should not fail here): %v", err)
	}

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func startBufServer(t *testing.T, svc uploadSvc) pb.UploadServiceClient {
	t.Helper()

	srv, err := NewGRPCServer("bufnet", logging.Noop, svc, "secret")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.serve(ctx, lis) }()
	t.Cleanup(cancel)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return pb.NewUploadServiceClient(conn)
}

func TestServer_EndToEnd(t *testing.T) {
	exp := time.Date(2025, 3, 4, 10, 5, 0, 0, time.UTC)
	svc := &fakeUploads{
		slots: []models.Slot{{LocalID: "a", StoragePath: "users/u7/a.jpg", TransferURL: "https://s3/x", ExpiresAt: exp}},
		grant: models.PartsGrant{UploadID: "mp-1", Parts: []models.PartURL{{Number: 1, URL: "https://s3/p1"}}},
		n:     1,
	}
	c := startBufServer(t, svc)

	ping, err := c.Ping(context.Background(), &pb.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)

	_, err = c.Issue(context.Background(), &pb.IssueRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = c.PresignParts(context.Background(), &pb.PartsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	tok, err := auth.GenerateToken("u7", []byte("secret"), time.Minute)
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)

	resp, err := c.Issue(ctx, &pb.IssueRequest{Files: []*pb.FileSpec{{LocalId: "a", Filename: "a.jpg", FileSize: 3}}})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "users/u7/a.jpg", resp.Slots[0].StoragePath)
	assert.Equal(t, "https://s3/x", resp.Slots[0].TransferUrl)
	assert.True(t, exp.Equal(resp.Slots[0].ExpiresAt.AsTime()))
	assert.Equal(t, "u7", svc.userID)
	assert.Equal(t, []models.FileSpec{{LocalID: "a", Filename: "a.jpg", FileSize: 3}}, svc.files)

	parts, err := c.PresignParts(ctx, &pb.PartsRequest{Token: "t", TotalSize: 10, ChunkSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "mp-1", parts.UploadId)
	require.Len(t, parts.Parts, 1)
	assert.Equal(t, "https://s3/p1", parts.Parts[0].Url)

	conf, err := c.Confirm(ctx, &pb.ConfirmRequest{Uploads: []*pb.Upload{{StoragePath: "users/u7/a.jpg", FileSize: 3}}})
	require.NoError(t, err)
	assert.Equal(t, int32(1), conf.Recorded)
	assert.Equal(t, int64(3), svc.uploads[0].FileSize)
}
