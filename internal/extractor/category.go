package extractor

import (
	"regexp"
	"strings"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

var (
	storagePattern    = regexp.MustCompile(`(?i)\b(\d+)\s*(GB|TB)\b`)
	modelKeyPattern   = regexp.MustCompile(`"(?:model|mpn|sku)"\s*:\s*"([^"]+)"`)
	modelLabelPattern = regexp.MustCompile(`\bModel\s*:\s*([A-Za-z0-9][A-Za-z0-9\-]{1,29})`)

	sizeKeyPattern   = regexp.MustCompile(`"size"\s*:\s*"([^"]+)"`)
	sizeLabelPattern = regexp.MustCompile(`(?i)\bSize\s*:\s*(XXS|XS|S|M|L|XL|XXL|XXXL)\b`)

	materialKeyPattern   = regexp.MustCompile(`"material"\s*:\s*"([^"]+)"`)
	compositionPattern   = regexp.MustCompile(`\b\d{1,3}\s*%\s*[A-Za-z]+(?:\s*[,/]\s*\d{1,3}\s*%\s*[A-Za-z]+)*`)
	materialLabelPattern = regexp.MustCompile(`(?i)\bMaterial\s*:\s*([A-Za-z][A-Za-z ,]{1,49})`)
)

// applyCategoryPatterns fills category-specific fields: storage and model for
// electronics, size and material for clothes. Other categories add nothing.
func applyCategoryPatterns(d *document, p *models.ExtractedProduct, category models.Category) {
	switch category {
	case models.CategoryElectronics:
		applyElectronics(d, p)
	case models.CategoryClothes:
		applyClothes(d, p)
	}
}

func applyElectronics(d *document, p *models.ExtractedProduct) {
	if m := storagePattern.FindStringSubmatch(d.raw); len(m) > 2 {
		fillString(&p.Storage, m[1]+strings.ToUpper(m[2]), validStorage)
	}

	if m := modelKeyPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Model, m[1], validModel)
	}
	if m := modelLabelPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Model, m[1], validModel)
	}
}

func applyClothes(d *document, p *models.ExtractedProduct) {
	if m := sizeKeyPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Size, m[1], validSize)
	}
	if m := sizeLabelPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Size, strings.ToUpper(m[1]), validSize)
	}

	if m := materialKeyPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Material, m[1], validMaterial)
	}
	if m := compositionPattern.FindString(d.raw); m != "" {
		fillString(&p.Material, m, validMaterial)
	}
	if m := materialLabelPattern.FindStringSubmatch(d.raw); len(m) > 1 {
		fillString(&p.Material, strings.TrimRight(m[1], " ,"), validMaterial)
	}
}
