package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SessionInfo summarizes one prior upload session found in a bucket.
type SessionInfo struct {
	ID         string `json:"id"`
	Objects    int    `json:"objects"`
	HasGallery bool   `json:"has_gallery"`
}

// ListSessions walks the uploads/ prefix and groups objects by session id.
// The gallery page is reported separately from the uploaded files.
func (s *Store) ListSessions(ctx context.Context, bucket string) ([]SessionInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(UploadPrefix),
	})

	byID := make(map[string]*SessionInfo)
	var order []string

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing sessions in %s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			rest := strings.TrimPrefix(aws.ToString(obj.Key), UploadPrefix)
			id, name, ok := strings.Cut(rest, "/")
			if !ok || id == "" || name == "" {
				continue
			}

			info := byID[id]
			if info == nil {
				info = &SessionInfo{ID: id}
				byID[id] = info
				order = append(order, id)
			}
			if name == GalleryObject {
				info.HasGallery = true
			} else {
				info.Objects++
			}
		}
	}

	sessions := make([]SessionInfo, 0, len(order))
	for _, id := range order {
		sessions = append(sessions, *byID[id])
	}
	return sessions, nil
}

// ListSessionObjects returns the object keys of one session, gallery page
// included, in the order the bucket lists them.
func (s *Store) ListSessionObjects(ctx context.Context, bucket, sessionID string) ([]string, error) {
	prefix := UploadPrefix + sessionID + "/"
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing session %s in %s: %w", sessionID, bucket, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
