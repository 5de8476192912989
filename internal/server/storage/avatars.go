// Package storage отвечает за хранение аватаров пользователей
// в S3-совместимом хранилище (AWS S3 или MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
)

// AvatarStorage загружает аватары в бакет и строит публичные URL.
type AvatarStorage struct {
	client *s3.Client
	cfg    config.S3Config
}

// NewAvatarStorage создаёт S3-клиент по настройкам из конфига.
//
// BaseEndpoint задаётся для MinIO; для AWS остаётся пустым.
func NewAvatarStorage(ctx context.Context, cfg config.S3Config) (*AvatarStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"", // токен не нужен
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarStorage{client: client, cfg: cfg}, nil
}

// Upload кладёт файл аватара в бакет и возвращает публичный URL.
//
// Ключ объекта детерминирован по пользователю (avatars/<user-id>),
// повторная загрузка перезаписывает старый аватар.
func (s *AvatarStorage) Upload(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("avatars/%s", userID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar: %w", err)
	}

	return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key, nil
}
