package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/http/response"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Color   string `json:"color"`
	BGColor string `json:"bg_color"`
	Demo    bool   `json:"demo"`
	Locked  bool   `json:"locked"`
}

// List serves the full catalog. Locked entries keep their tile metadata but
// drop the image url until the request carries a verified unlock token.
func (h *CatalogHandler) List(c *gin.Context) {
	_, unlocked := c.Get(middleware.UnlockDeviceKey)

	images := h.catalog.List()
	entries := make([]catalogEntry, 0, len(images))
	for _, img := range images {
		entries = append(entries, toEntry(img, unlocked))
	}
	response.RespondOK(c, gin.H{"images": entries, "unlocked": unlocked})
}

func toEntry(img domain.PuzzleImage, unlocked bool) catalogEntry {
	locked := !img.Demo && !unlocked
	entry := catalogEntry{
		ID:      img.ID,
		Name:    img.Name,
		Color:   img.Color,
		BGColor: img.BGColor,
		Demo:    img.Demo,
		Locked:  locked,
	}
	if !locked {
		entry.URL = img.URL
	}
	return entry
}
