package app

import (
	"fmt"
	"log"
	"strings"

	"flowlens/internal/gateway/config"
	artifactrepo "flowlens/internal/gateway/repository/artifact"
	dashrepo "flowlens/internal/gateway/repository/dashboard"
)

type gatewayStores struct {
	dashboards *dashrepo.Store
	artifacts  artifactrepo.Store
}

func initStores(cfg *config.Config) (*gatewayStores, error) {
	artifacts, err := chooseArtifactStore(cfg)
	if err != nil {
		return nil, err
	}

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		dashboards, err := dashrepo.NewPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("init dashboard store: %w", err)
		}
		log.Printf("dashboard store: postgres")
		return &gatewayStores{dashboards: dashboards, artifacts: artifacts}, nil
	}

	log.Printf("dashboard store: in-memory (no DATABASE_URL)")
	return &gatewayStores{dashboards: dashrepo.New(), artifacts: artifacts}, nil
}

func chooseArtifactStore(cfg *config.Config) (artifactrepo.Store, error) {
	if cfg.Artifact.CanUseS3() {
		s3Store, err := artifactrepo.NewS3Store(artifactrepo.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init artifact s3 store: %w", err)
		}
		log.Printf("artifact store: s3 bucket=%s endpoint=%s", cfg.Artifact.Bucket, cfg.Artifact.Endpoint)
		return s3Store, nil
	}
	if cfg.Artifact.Enabled {
		log.Printf("artifact store: using in-memory fallback (s3 config incomplete)")
	}
	return artifactrepo.NewMemoryStore(), nil
}
