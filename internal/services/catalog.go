package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

// CatalogService serves the fixed ordered list of purchasable puzzle images.
// The catalog is loaded once at startup and never mutated.
type CatalogService interface {
	List() []domain.PuzzleImage
	Get(id string) (domain.PuzzleImage, bool)
	// Demo returns the single entry playable without activation.
	Demo() domain.PuzzleImage
}

type catalogService struct {
	log    *logger.Logger
	images []domain.PuzzleImage
	byID   map[string]domain.PuzzleImage
	demo   domain.PuzzleImage
}

type catalogFile struct {
	Images []domain.PuzzleImage `yaml:"images"`
}

// NewCatalogService loads the catalog from path, or falls back to the
// compiled-in set when path is empty.
func NewCatalogService(log *logger.Logger, path string) (CatalogService, error) {
	serviceLog := log.With("service", "CatalogService")

	images := domain.DefaultCatalog()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		var parsed catalogFile
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("parse catalog file: %w", err)
		}
		images = parsed.Images
	}

	svc, err := newCatalog(serviceLog, images)
	if err != nil {
		return nil, err
	}
	serviceLog.Info("Catalog loaded", "entries", len(images), "from_file", path != "")
	return svc, nil
}

func newCatalog(log *logger.Logger, images []domain.PuzzleImage) (*catalogService, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one image")
	}
	byID := make(map[string]domain.PuzzleImage, len(images))
	var demo *domain.PuzzleImage
	for i, img := range images {
		if img.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if img.URL == "" {
			return nil, fmt.Errorf("catalog entry %q has no url", img.ID)
		}
		if _, dup := byID[img.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q duplicated", img.ID)
		}
		byID[img.ID] = img
		if img.Demo && demo == nil {
			d := img
			demo = &d
		}
	}
	if demo == nil {
		// auto-promote the first entry
		d := images[0]
		demo = &d
	}
	return &catalogService{log: log, images: images, byID: byID, demo: *demo}, nil
}

func (cs *catalogService) List() []domain.PuzzleImage {
	out := make([]domain.PuzzleImage, len(cs.images))
	copy(out, cs.images)
	return out
}

func (cs *catalogService) Get(id string) (domain.PuzzleImage, bool) {
	img, ok := cs.byID[id]
	return img, ok
}

func (cs *catalogService) Demo() domain.PuzzleImage {
	return cs.demo
}
