package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/util"
	"skill_insight_backend/pkg/logger"
	"skill_insight_backend/pkg/monitoring"
)

// ArchiveProvider 报告归档的通用存储接口
type ArchiveProvider interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	URL(objectName string) string
}

// LocalArchiveProvider 本地目录归档实现
type LocalArchiveProvider struct {
	Config *config.StorageConfig
}

func (p *LocalArchiveProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, objectName)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.URL(objectName), nil
}

func (p *LocalArchiveProvider) URL(objectName string) string {
	return "/archives/" + objectName
}

// MinioArchiveProvider MinIO归档实现
type MinioArchiveProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioArchiveProvider(cfg *config.StorageConfig) (*MinioArchiveProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *MinioArchiveProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *MinioArchiveProvider) URL(objectName string) string {
	return "/" + p.Config.MinioBucket + "/" + objectName
}

// OSSArchiveProvider 阿里云OSS归档实现
type OSSArchiveProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSArchiveProvider(cfg *config.StorageConfig) (*OSSArchiveProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSArchiveProvider{Config: cfg, Client: client}, nil
}

func (p *OSSArchiveProvider) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(objectName, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *OSSArchiveProvider) URL(objectName string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, objectName)
}

// ArchiveService 技能报告归档：渲染是纯函数，落盘只发生在这一层
type ArchiveService struct {
	Provider ArchiveProvider
	Report   *ReportService
}

func NewArchiveService(cfg *config.Config, report *ReportService) *ArchiveService {
	provider, err := newArchiveProvider(&cfg.Storage)
	if err != nil {
		// 对象存储不可用时退回本地目录，归档接口保持可用
		logger.Log.Warn("falling back to local archive storage",
			zap.String("type", cfg.Storage.Type),
			zap.Error(err))
		provider = &LocalArchiveProvider{Config: &cfg.Storage}
	}
	return &ArchiveService{Provider: provider, Report: report}
}

func newArchiveProvider(cfg *config.StorageConfig) (ArchiveProvider, error) {
	switch cfg.Type {
	case util.StorageMinio:
		return NewMinioArchiveProvider(cfg)
	case util.StorageOSS:
		return NewOSSArchiveProvider(cfg)
	case util.StorageLocal, "":
		return &LocalArchiveProvider{Config: cfg}, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", util.ErrArchiveUnavailable, cfg.Type)
	}
}

// ArchiveSkillReport 生成技能报告并以 markdown 和 JSON 两种形式归档
func (s *ArchiveService) ArchiveSkillReport(ctx context.Context, learnerID, profileName string, threshold float64) (*model.ArchiveResult, error) {
	report, err := s.Report.BuildSkillReport(learnerID, profileName, threshold)
	if err != nil {
		return nil, err
	}

	stamp := report.GeneratedAt.UTC().Format("20060102T150405Z")
	base := fmt.Sprintf("reports/%s/%s", learnerID, stamp)

	markdown := s.Report.RenderSkillReportMarkdown(report)
	markdownURL, err := s.Provider.Put(ctx, base+".md", strings.NewReader(markdown), int64(len(markdown)), util.MimeMarkdown)
	if err != nil {
		return nil, fmt.Errorf("archive markdown: %w", err)
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	jsonURL, err := s.Provider.Put(ctx, base+".json", bytes.NewReader(raw), int64(len(raw)), util.MimeJSON)
	if err != nil {
		return nil, fmt.Errorf("archive json: %w", err)
	}

	monitoring.ReportCounter.WithLabelValues("archive").Inc()
	return &model.ArchiveResult{
		LearnerID:   learnerID,
		Profile:     report.Profile,
		MarkdownURL: markdownURL,
		JSONURL:     jsonURL,
		ArchivedAt:  time.Now(),
	}, nil
}
