package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Kinds are the allowed object prefixes. Writes are owner-scoped: the
// object path always embeds the authenticated uid, which is what the
// bucket's path-prefix policy keys on.
const (
	KindCovers   = "covers"
	KindListings = "listings"
	KindAvatars  = "avatars"
)

var ErrBadKind = errors.New("unknown media kind")

type Uploader struct {
	client *gcs.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}

// Upload stores data under {kind}/{uid}/{uuid}{ext} and returns a
// token-bearing public download URL.
func (u *Uploader) Upload(ctx context.Context, kind, uid, filename, contentType string, data []byte) (string, error) {
	switch kind {
	case KindCovers, KindListings, KindAvatars:
	default:
		return "", ErrBadKind
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := fmt.Sprintf("%s/%s/%s%s", kind, uid, uuid.NewString(), ext)

	token := uuid.NewString()
	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, escapedPath, token)
	return publicURL, nil
}
