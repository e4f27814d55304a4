// Пакет s3 — архив выходных юнитов в объектном хранилище (AWS S3, MinIO, LocalStack).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports"
)

var _ ports.UnitStore = (*UnitStore)(nil)

// ObjectPutter — часть клиента S3, нужная стору.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// ClientConfig — параметры подключения. Пустой Endpoint — AWS; для эмуляторов нужен PathStyle.
type ClientConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool

	// RoleARN — если задан, ключи выше (или цепочка AWS) используются только для AssumeRole в STS.
	RoleARN     string
	SessionName string
	ExternalID  string
}

// NewClient — клиент S3: статические ключи, если заданы, иначе стандартная цепочка AWS.
// С RoleARN итоговые креды берутся из STS AssumeRole и кэшируются до истечения.
func NewClient(ctx context.Context, cfg ClientConfig) (*awss3.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loaders = append(loaders, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.RoleARN != "" {
		awsCfg.Credentials = assumeRole(awsCfg, cfg)
	}
	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func assumeRole(base aws.Config, cfg ClientConfig) aws.CredentialsProvider {
	stsClient := sts.NewFromConfig(base, func(o *sts.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	provider := stscreds.NewAssumeRoleProvider(stsClient, cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		if cfg.SessionName != "" {
			o.RoleSessionName = cfg.SessionName
		}
		if cfg.ExternalID != "" {
			o.ExternalID = aws.String(cfg.ExternalID)
		}
	})
	return aws.NewCredentialsCache(provider)
}

// UnitStore пишет каждый юнит отдельным объектом:
// <prefix>/<relationship>/<yyyy>/<mm>/<dd>/<id><ext>.
// Ключ детерминирован по id, повторная выгрузка перезаписывает тот же объект.
type UnitStore struct {
	cli    ObjectPutter
	bucket string
	prefix string
	codec  Codec
}

func NewUnitStore(cli ObjectPutter, bucket, prefix string, codec Codec) *UnitStore {
	return &UnitStore{cli: cli, bucket: bucket, prefix: strings.Trim(prefix, "/"), codec: codec}
}

// SaveUnits выгружает юниты по очереди; первая ошибка прерывает сохранение.
func (s *UnitStore) SaveUnits(ctx context.Context, units []*domain.OutputUnit) error {
	for _, u := range units {
		if err := s.put(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (s *UnitStore) put(ctx context.Context, u *domain.OutputUnit) error {
	body, err := s.codec.Encode(u.Content)
	if err != nil {
		return fmt.Errorf("encode unit %s: %w", u.ID, err)
	}

	key := s.Key(u)
	put := &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType(u)),
		Metadata:    metadata(u),
	}
	if s.codec.Name != "" {
		put.ContentEncoding = aws.String(s.codec.Name)
	}
	if _, err := s.cli.PutObject(ctx, put); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Key — ключ объекта юнита.
func (s *UnitStore) Key(u *domain.OutputUnit) string {
	day := u.CreatedAt.UTC().Format("2006/01/02")
	return path.Join(s.prefix, string(u.Relationship), day, u.ID+s.codec.Ext)
}

func contentType(u *domain.OutputUnit) string {
	if ct := u.Attributes[domain.AttrMimeType]; ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// metadata — атрибуты юнита как пользовательские метаданные объекта (x-amz-meta-*).
func metadata(u *domain.OutputUnit) map[string]string {
	md := make(map[string]string, len(u.Attributes)+1)
	for k, v := range u.Attributes {
		if strings.HasSuffix(k, ".schema") {
			// текст схемы может не влезть в лимит заголовков
			continue
		}
		md[strings.ToLower(k)] = v
	}
	md["relationship"] = string(u.Relationship)
	return md
}
