package cloudstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Writer struct {
	client     *s3.Client
	bucket     string
	objectPath string
	buffer     bytes.Buffer
}

type S3WriterFactory struct {
	client *s3.Client
}

func newS3Client(region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func NewS3WriterFactory(region string) (*S3WriterFactory, error) {
	client, err := newS3Client(region)
	if err != nil {
		return nil, err
	}
	return &S3WriterFactory{client: client}, nil
}

func (f *S3WriterFactory) NewWriter(bucket, objectPath string) (Writer, error) {
	return &S3Writer{
		client:     f.client,
		bucket:     bucket,
		objectPath: objectPath,
	}, nil
}

func (w *S3Writer) Write(data []byte) (int, error) {
	return w.buffer.Write(data)
}

// Close uploads everything written so far as a single object.
func (w *S3Writer) Close() error {
	ctx := context.Background()
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.objectPath),
		Body:   bytes.NewReader(w.buffer.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("unable to upload file to S3: %v", err)
	}
	return nil
}

type S3Fetcher struct {
	client *s3.Client
}

func NewS3Fetcher(region string) (*S3Fetcher, error) {
	client, err := newS3Client(region)
	if err != nil {
		return nil, err
	}
	return &S3Fetcher{client: client}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch object from S3: %v", err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
