package s3

import (
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/service/s3"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

var ErrNotConfigured = errors.New("s3 bucket is not configured")

type ItfS3 interface {
	PresignUrl(fileUrl string) (string, error)
}

type s3Client struct {
	client     *s3.S3
	bucketName string
	expiry     time.Duration
}

// New returns ErrNotConfigured when AWS_BUCKET_NAME is unset so callers can
// run without object storage.
func New() (ItfS3, error) {
	bucketName := os.Getenv("AWS_BUCKET_NAME")
	if bucketName == "" {
		return nil, ErrNotConfigured
	}

	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:     s3.New(sess),
		bucketName: bucketName,
		expiry:     15 * time.Minute,
	}, nil
}

func (s *s3Client) PresignUrl(fileUrl string) (string, error) {
	key := extractKeyFromS3Url(fileUrl)

	decodedKey, err := url.QueryUnescape(key)
	if err != nil {
		return "", fmt.Errorf("failed to decode S3 key: %w", err)
	}

	_, err = s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(decodedKey),
	})
	if err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(decodedKey),
	})

	urlStr, err := req.Presign(s.expiry)
	if err != nil {
		return "", err
	}

	return urlStr, nil
}

// IsObjectURL reports whether fileUrl points at an S3 bucket rather than an
// arbitrary image host.
func IsObjectURL(fileUrl string) bool {
	u, err := url.Parse(fileUrl)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	return strings.HasSuffix(host, ".amazonaws.com") && strings.Contains(host, "s3")
}

func extractKeyFromS3Url(fileUrl string) string {
	parts := strings.SplitN(fileUrl, ".com/", 2)
	if len(parts) > 1 {
		return parts[1]
	}
	return fileUrl
}

func newSession() (*session.Session, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	return sess, nil
}
