package helper

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// Bucket dokumen pendaftaran. Path objek: {email_tersanitasi}/{kategori}{ext}.
const DefaultBucket = "registration-documents"

type Service struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
}

func NewServiceFromEnv() (*Service, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if bucketName == "" {
		bucketName = DefaultBucket
	}
	if endpoint == "" || ak == "" || sk == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &Service{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
	}, nil
}

// UploadStream menulis objek apa adanya. PutObject menimpa key yang sudah ada
// (overwrite-on-conflict, sesuai semantik upsert di storage).
func (s *Service) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	if s == nil {
		return fmt.Errorf("object storage belum terkonfigurasi")
	}
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(key)))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	return s.Bucket.PutObject(key, r, opts...)
}

// SignedURL membuat URL berumur pendek untuk preview/download dokumen.
func (s *Service) SignedURL(key string, expirySeconds int64) (string, error) {
	if s == nil {
		return "", fmt.Errorf("object storage belum terkonfigurasi")
	}
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if expirySeconds <= 0 {
		expirySeconds = 3600
	}
	return s.Bucket.SignURL(key, oss.HTTPGet, expirySeconds)
}

func (s *Service) DeleteObjects(ctx context.Context, keys []string) error {
	if s == nil || len(keys) == 0 {
		return nil
	}
	_, err := s.Bucket.DeleteObjects(keys, oss.WithContext(ctx))
	return err
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeEmailFolder menurunkan email jadi token aman untuk path objek,
// sama dengan sanitasi form pendaftaran lama (non-alfanumerik → "_").
func SanitizeEmailFolder(email string) string {
	return nonAlnum.ReplaceAllString(email, "_")
}

// DocumentObjectKey: path deterministik per (email, kategori).
// Submission ulang dengan email sama menimpa dokumen lama.
func DocumentObjectKey(email, category, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return SanitizeEmailFolder(email) + "/" + category + ext
}
