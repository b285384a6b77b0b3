package extractor_test

import (
	"testing"

	"github.com/accadaniel/PriceSpy/internal/extractor"
	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDPage = `<html><head>
<script type="application/ld+json">{"this block is broken</script>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"BreadcrumbList","name":"Home"},
  {"@type":["Product","Thing"],
   "name":"Acme Widget Pro | Acme Store",
   "brand":{"@type":"Brand","name":"Acme"},
   "color":"Black",
   "sku":"AW-100",
   "material":["Aluminum","Rubber"],
   "offers":[{"@type":"Offer","price":"1 299,00","priceCurrency":"EUR"}],
   "description":"The best widget money can buy."}
]}
</script>
</head><body><h1>Acme Widget Pro</h1></body></html>`

func TestUnitExtractJSONLD(t *testing.T) {
	product := extractor.Extract(jsonLDPage, models.CategoryElectronics)

	assert.Equal(t, "Acme Widget Pro", product.Name, "should recover name with store suffix stripped")
	assert.Equal(t, "Acme", product.Brand, "should recover brand from brand object")
	assert.Equal(t, "Black", product.Color, "should recover color")
	assert.Equal(t, "AW-100", product.Model, "should fall back to sku for model")
	assert.Equal(t, "Aluminum, Rubber", product.Material, "should join material list")
	assert.InDelta(t, 1299.0, product.Price, 1e-9, "should parse locale-formatted offer price")
	assert.Equal(t, "Acme Widget Pro AW-100 Black", product.SearchQuery,
		"should synthesize query with brand deduplicated out of name",
	)
}

func TestUnitExtractBlockPage(t *testing.T) {
	page := `<html><head><title>Please hold</title></head>
<body><p>Checking your browser before accessing the site.</p>
<script type="application/ld+json">{"@type":"Product","name":"Ghost Item","offers":{"price":9.99}}</script>
</body></html>`

	product := extractor.Extract(page, models.CategoryElectronics)

	require.True(t, product.IsEmpty(), "block page should yield an entirely empty result")
}

func TestUnitExtractMetaTags(t *testing.T) {
	page := `<html><head>
<title>Nimbus X2 Running Shoe - Walmart.com</title>
<meta content="Nimbus X2 Running Shoe" property="og:title"/>
<meta property="product:price:amount" content="89,99"/>
<meta property="product:brand" content="Nimbus"/>
<meta name="description" content="Lightweight trainer in vivid crimson and navy."/>
</head><body></body></html>`

	product := extractor.Extract(page, models.CategoryClothes)

	assert.Equal(t, "Nimbus X2 Running Shoe", product.Name, "should prefer og:title over document title")
	assert.Equal(t, "Nimbus", product.Brand, "should read brand meta tag")
	assert.InDelta(t, 89.99, product.Price, 1e-9, "should parse comma-decimal meta price")
	assert.Equal(t, "Navy", product.Color, "should find a known color in the description")
	assert.Equal(t, "Nimbus X2 Running Shoe Navy", product.SearchQuery, "should append color to query")
}

func TestUnitExtractFallbackPatterns(t *testing.T) {
	page := `<html><head><title>UltraPhone 12 Pro - Amazon.com</title></head>
<body><script>var state = {"brand":"UltraTech","price":"499.99"};</script></body></html>`

	product := extractor.Extract(page, models.CategoryElectronics)

	assert.Equal(t, "UltraPhone 12 Pro", product.Name, "should take name from title and strip retailer suffix")
	assert.Equal(t, "UltraTech", product.Brand, "should scrape brand from raw text")
	assert.InDelta(t, 499.99, product.Price, 1e-9, "should scrape price from raw text")
	assert.Equal(t, "UltraTech UltraPhone 12 Pro", product.SearchQuery, "should build query from brand and name")
}

func TestUnitExtractFallbackPriceBounds(t *testing.T) {
	page := `<html><body><script>var state = {"price":"999999"};</script></body></html>`

	product := extractor.Extract(page, models.CategoryElectronics)

	assert.Zero(t, product.Price, "out-of-range price should be rejected")
}

func TestUnitExtractElectronics(t *testing.T) {
	page := `<html><body>
<p>Internal memory: 256 GB</p>
<p>Model: SM-G998B</p>
</body></html>`

	product := extractor.Extract(page, models.CategoryElectronics)

	assert.Equal(t, "256GB", product.Storage, "should normalize storage capacity")
	assert.Equal(t, "SM-G998B", product.Model, "should read labeled model number")
}

func TestUnitExtractClothes(t *testing.T) {
	page := `<html><body>
<div>Size: M</div>
<div>Fabric: 80% Cotton, 20% Polyester</div>
</body></html>`

	product := extractor.Extract(page, models.CategoryClothes)

	assert.Equal(t, "M", product.Size, "should read labeled size")
	assert.Equal(t, "80% Cotton, 20% Polyester", product.Material, "should read percentage composition")
}

func TestUnitExtractCategoryDoesNotLeak(t *testing.T) {
	page := `<html><body>
<p>Internal memory: 512 GB</p>
<div>Size: L</div>
</body></html>`

	asClothes := extractor.Extract(page, models.CategoryClothes)
	asElectronics := extractor.Extract(page, models.CategoryElectronics)

	assert.Empty(t, asClothes.Storage, "clothes extraction should not set storage")
	assert.Equal(t, "L", asClothes.Size, "clothes extraction should set size")
	assert.Equal(t, "512GB", asElectronics.Storage, "electronics extraction should set storage")
	assert.Empty(t, asElectronics.Size, "electronics extraction should not set size")
}

func TestUnitExtractMalformedInput(t *testing.T) {
	pages := map[string]string{
		"empty":         "",
		"not html":      "}{ not even close to html <<<",
		"truncated tag": "<html><head><meta property=",
	}

	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				extractor.Extract(page, models.CategoryElectronics)
			}, "malformed input should degrade, not fail")
		})
	}
}

func TestUnitExtractJSONLDPrecedence(t *testing.T) {
	// JSON-LD carries one price, a meta tag another. The structured block is
	// more trusted and must win.
	page := `<html><head>
<meta property="product:price:amount" content="59.99"/>
<script type="application/ld+json">
{"@type":"Product","name":"Solo Speaker","offers":{"price":49.99}}
</script>
</head><body></body></html>`

	product := extractor.Extract(page, models.CategoryElectronics)

	assert.InDelta(t, 49.99, product.Price, 1e-9, "JSON-LD price should win over meta price")
	assert.Equal(t, "Solo Speaker", product.Name, "should take name from JSON-LD")
}
