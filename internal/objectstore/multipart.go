package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyObject is returned by MultipartUpload for zero-byte input. S3
// rejects a multipart upload without at least one non-empty part; callers
// should fall back to Upload.
var ErrEmptyObject = errors.New("objectstore: empty object cannot be uploaded in parts")

// MultipartUpload uploads the reader contents as a multipart object:
// create session, upload fixed-size parts, complete. The session is aborted
// if any step fails after it was opened, so no orphaned parts are billed.
func (s *Store) MultipartUpload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	// The first part is read before the session opens so empty input never
	// leaves a dangling upload behind.
	first := make([]byte, s.partSize)
	n, err := io.ReadFull(r, first)
	if errors.Is(err, io.EOF) {
		return ErrEmptyObject
	}
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("reading first part: %w", err)
	}

	create, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("creating multipart upload for %s: %w", key, err)
	}
	uploadID := aws.ToString(create.UploadId)

	parts, err := s.uploadParts(ctx, bucket, key, uploadID, first[:n], r)
	if err != nil {
		s.abort(ctx, bucket, key, uploadID)
		return err
	}

	_, err = s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: parts,
		},
	})
	if err != nil {
		s.abort(ctx, bucket, key, uploadID)
		return fmt.Errorf("completing multipart upload for %s: %w", key, err)
	}

	return nil
}

// uploadParts sends the already-read first part plus the rest of the reader
// as numbered parts. Parts go through an errgroup bounded by the configured
// concurrency; with the default of 1 this degenerates to the sequential loop.
func (s *Store) uploadParts(ctx context.Context, bucket, key, uploadID string, first []byte, r io.Reader) ([]types.CompletedPart, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var (
		mu    sync.Mutex
		parts []types.CompletedPart
	)

	upload := func(num int32, body []byte) {
		g.Go(func() error {
			out, err := s.client.UploadPart(gctx, &s3.UploadPartInput{
				Bucket:     aws.String(bucket),
				Key:        aws.String(key),
				UploadId:   aws.String(uploadID),
				PartNumber: aws.Int32(num),
				Body:       bytes.NewReader(body),
			})
			if err != nil {
				return fmt.Errorf("uploading part %d of %s: %w", num, key, err)
			}
			mu.Lock()
			parts = append(parts, types.CompletedPart{
				ETag:       out.ETag,
				PartNumber: aws.Int32(num),
			})
			mu.Unlock()
			return nil
		})
	}

	upload(1, first)

	num := int32(1)
	for {
		buf := make([]byte, s.partSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			num++
			upload(num, buf[:n])
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			_ = g.Wait()
			return nil, fmt.Errorf("reading part %d of %s: %w", num+1, key, err)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// CompleteMultipartUpload requires ascending part numbers.
	sort.Slice(parts, func(i, j int) bool {
		return aws.ToInt32(parts[i].PartNumber) < aws.ToInt32(parts[j].PartNumber)
	})

	return parts, nil
}

// abort tears down a multipart session. Runs detached from the caller's
// cancellation so a canceled upload still gets cleaned up server-side.
func (s *Store) abort(ctx context.Context, bucket, key, uploadID string) {
	_, err := s.client.AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not abort multipart upload for %s: %v\n", key, err)
	}
}

// Upload stores a small object through the SDK transfer manager. Used for the
// gallery page and as the fallback for empty files.
func (s *Store) Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	uploader := manager.NewUploader(s.client, func(u *manager.Uploader) {
		u.Concurrency = s.concurrency
	})

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
