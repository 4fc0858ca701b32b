package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	sc "github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxExportEvents bounds a single export, newest events first.
const MaxExportEvents = 10000

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// EventLog is the document written by an export.
type EventLog struct {
	Service    string             `json:"service"`
	ExportedAt time.Time          `json:"exported_at"`
	Events     []models.EventRest `json:"events"`
}

// ExportService uploads the event log of a service to object storage.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	events      *EventService
	config      *sc.Config
	now         func() time.Time
	newID       func() string
}

func NewExportService(m repomanager.RepositoryManager, events *EventService, config *sc.Config) *ExportService {
	return &ExportService{
		repomanager: m,
		events:      events,
		config:      config,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// ExportKey is the object key of an export taken at t.
func ExportKey(serviceSlug string, t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("events/%s/%04d/%02d/%02d/%s.json", serviceSlug, t.Year(), t.Month(), t.Day(), id)
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export writes the service's events as JSON projections and returns the
// object key and the number of events written.
func (s *ExportService) Export(ctx context.Context, serviceSlug string) (string, int, error) {
	if _, err := s.repomanager.Services().GetBySlug(ctx, serviceSlug); err != nil {
		return "", 0, err
	}

	evs, err := s.repomanager.Events().ListByService(ctx, serviceSlug, MaxExportEvents)
	if err != nil {
		return "", 0, err
	}
	rest, err := s.events.Rest(ctx, s.config.PublicURL, evs...)
	if err != nil {
		return "", 0, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(EventLog{Service: serviceSlug, ExportedAt: now, Events: rest})
	if err != nil {
		return "", 0, err
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := ExportKey(serviceSlug, now, s.newID())
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", 0, fmt.Errorf("error uploading export: %w", err)
	}

	return key, len(rest), nil
}
