package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config configures an S3-compatible bucket (AWS, R2, Tigris, MinIO).
type S3Config struct {
	Region    string
	Bucket    string
	Prefix    string
	Endpoint  string
	PublicURL string // base URL objects are served from
	AccessKey string
	SecretKey string
}

// S3 stores uploads as objects under "<prefix>/<folder>/<uuid><ext>".
type S3 struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" || cfg.PublicURL == "" {
		return nil, fmt.Errorf("s3 bucket and public URL are required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (p *S3) objectKey(folder, filename string) string {
	return path.Join(p.prefix, folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

func (p *S3) Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error) {
	key := p.objectKey(folder, filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if ct := mime.TypeByExtension(path.Ext(filename)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return p.publicURL + "/" + key, nil
}

func (p *S3) Delete(ctx context.Context, objectURL string) error {
	if !p.Owns(objectURL) {
		return fmt.Errorf("%s is not in bucket %s", objectURL, p.bucket)
	}
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.keyFromURL(objectURL)),
	})
	if err != nil {
		return fmt.Errorf("delete from S3: %w", err)
	}
	return nil
}

func (p *S3) Owns(objectURL string) bool {
	return strings.HasPrefix(objectURL, p.publicURL+"/")
}

func (p *S3) keyFromURL(objectURL string) string {
	return strings.TrimPrefix(objectURL, p.publicURL+"/")
}
