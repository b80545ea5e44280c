package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// NotificationArchive keeps a compliance copy of every rendered mail in
// an S3 bucket, keyed by send date and template.
type NotificationArchive struct {
	client *s3.Client
	bucket string
}

// NewNotificationArchive builds the archive. When static credentials are
// empty the default AWS credential chain is used.
func NewNotificationArchive(region, bucket, accessKeyID, secretAccessKey string) *NotificationArchive {
	var cfg aws.Config
	var err error

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &NotificationArchive{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}
}

// Store uploads the rendered body of one sent notification. The key
// layout is notifications/yyyy/MM/dd/{templateID}/{uuid}.html.
func (a *NotificationArchive) Store(ctx context.Context, templateID, recipient, renderedBody string) (string, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("notifications/%04d/%02d/%02d/%s/%s.html",
		now.Year(), now.Month(), now.Day(), templateID, uuid.New().String())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(renderedBody)),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"recipient": recipient,
			"template":  templateID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive notification: %w", err)
	}

	return key, nil
}
