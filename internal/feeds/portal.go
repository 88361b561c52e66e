// Package feeds holds the external data clients the pipeline consumes:
// the public-procurement portal, the news scanner and the steel price
// ticker. Every client degrades to an Unavailable feed instead of
// returning an error; the pipeline decides what to substitute.
package feeds

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/httputil"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

// Steel intensity rule of thumb for public works: roughly 12% of the
// tender amount is steel, at about $1,000/ton installed.
const (
	steelShareOfAmount = 0.12
	steelUSDPerTon     = 1000.0
	minVolumeTons      = 50
	maxVolumeTons      = 2000
	defaultVolumeTons  = 200
)

// sectorKeywords maps a sector label to the tender-text keywords that
// select it. Spanish terms because the portal publishes in Spanish.
var sectorKeywords = []struct {
	sector   string
	keywords []string
}{
	{"Mining", []string{"minería", "mineria", "minero", "mina", "extracción", "mineral"}},
	{"Oil", []string{"petróleo", "petroleo", "petrolero", "oleoducto", "refinería", "crudo", "gas"}},
	{"Infrastructure", []string{"puente", "carretera", "vía", "camino", "autopista", "mtop"}},
	{"Construction", []string{"edificio", "construcción", "construccion", "obra civil", "hospital", "escuela"}},
	{"Energy", []string{"eléctrico", "electrico", "hidroeléctrica", "energía", "planta", "central"}},
}

const defaultSector = "Infrastructure"

// productCatalog maps a tender-text keyword to the steel products it
// implies, at most two per keyword
var productCatalog = []struct {
	keyword  string
	products []string
}{
	{"tubería", []string{"Tubería API 5L", "Tubo Galvanizado"}},
	{"viga", []string{"Vigas HEB 300mm", "Vigas IPE 200mm"}},
	{"plancha", []string{"Planchas Navales", "Plancha A36"}},
	{"perfil", []string{"Perfil Galvanizado", "Canal U"}},
	{"galvanizado", []string{"Tubo Galvanizado", "Plancha Galvanizada"}},
	{"varilla", []string{"Varilla Corrugada 12mm", "Varilla Lisa"}},
	{"acero estructural", []string{"Vigas HEB 300mm", "Perfil Galvanizado"}},
}

// genericProducts is assumed when a steel tender names no recognizable
// product
var genericProducts = []string{"Vigas IPE 200mm", "Tubo Galvanizado", "Plancha A36"}

const maxProductsPerTender = 4

var urgentWords = []string{"urgente", "emergencia", "inmediato", "prioritario"}

// tenderRecord is the portal's wire format for one procurement process
type tenderRecord struct {
	Code        string  `json:"codigo"`
	Title       string  `json:"titulo"`
	Description string  `json:"descripcion"`
	Entity      string  `json:"entidad"`
	AmountUSD   float64 `json:"monto_total"`
	PublishedAt string  `json:"fecha_publicacion"`
	DeadlineAt  string  `json:"fecha_limite"`
}

type tenderResponse struct {
	Records []tenderRecord `json:"data"`
}

// PortalClient fetches and classifies public tenders from the
// procurement portal. Implements contracts.OpportunityProvider.
type PortalClient struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	config     config.PortalConfig
	logger     *logger.Logger

	now func() time.Time
}

// NewPortalClient creates a portal client. cache may be nil.
func NewPortalClient(httpClient *httputil.Client, cache *redis.Cache, cfg config.PortalConfig, log *logger.Logger) *PortalClient {
	return &PortalClient{
		httpClient: httpClient,
		cache:      cache,
		config:     cfg,
		logger:     log,
		now:        time.Now,
	}
}

// Opportunities fetches active tenders within the window and classifies
// each into an opportunity
func (p *PortalClient) Opportunities(ctx context.Context, windowDays int) contracts.Feed[[]contracts.Opportunity] {
	if windowDays <= 0 {
		windowDays = p.config.WindowDays
	}

	cacheKey := fmt.Sprintf("tenders:%d", windowDays)
	if p.cache != nil {
		var cached []contracts.Opportunity
		if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return contracts.Available(cached)
		}
	}

	url := fmt.Sprintf("%s/api/procesos?dias=%d", p.config.BaseURL, windowDays)

	var resp tenderResponse
	if err := p.httpClient.GetJSON(ctx, url, &resp); err != nil {
		p.logger.WithError(err).Warn("Procurement portal fetch failed")
		return contracts.Unavailable[[]contracts.Opportunity]("portal fetch: " + err.Error())
	}

	opportunities := make([]contracts.Opportunity, 0, len(resp.Records))
	for _, record := range resp.Records {
		opportunities = append(opportunities, p.classify(record))
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, cacheKey, opportunities, p.config.CacheTTL); err != nil {
			p.logger.WithError(err).Debug("Tender cache write failed")
		}
	}

	p.logger.WithFields(map[string]interface{}{
		"window_days":   windowDays,
		"opportunities": len(opportunities),
	}).Info("Fetched procurement opportunities")

	return contracts.Available(opportunities)
}

// classify turns a raw tender record into an opportunity
func (p *PortalClient) classify(record tenderRecord) contracts.Opportunity {
	text := strings.ToLower(record.Title + " " + record.Description)

	return contracts.Opportunity{
		Code:            record.Code,
		Project:         record.Title,
		Entity:          record.Entity,
		Sector:          detectSector(text),
		DemandedGoods:   detectProducts(text),
		EstimatedVolume: estimateVolume(record.AmountUSD),
		AmountUSD:       record.AmountUSD,
		Urgency:         p.determineUrgency(record, text),
		PublishedAt:     parsePortalDate(record.PublishedAt),
		Source:          "compraspublicas",
	}
}

// detectSector returns the first sector whose keywords match the text
func detectSector(text string) string {
	for _, entry := range sectorKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.sector
			}
		}
	}
	return defaultSector
}

// detectProducts returns the steel products the tender text implies,
// deduplicated, at most four, in deterministic order
func detectProducts(text string) []string {
	seen := make(map[string]bool)
	var products []string
	for _, entry := range productCatalog {
		if !strings.Contains(text, entry.keyword) {
			continue
		}
		for _, product := range entry.products {
			if !seen[product] {
				seen[product] = true
				products = append(products, product)
			}
		}
	}

	if len(products) == 0 {
		return append([]string(nil), genericProducts...)
	}

	sort.Strings(products)
	if len(products) > maxProductsPerTender {
		products = products[:maxProductsPerTender]
	}
	return products
}

// estimateVolume converts the tender amount into estimated steel tons,
// clamped to a plausible range
func estimateVolume(amountUSD float64) float64 {
	if amountUSD <= 0 {
		return defaultVolumeTons
	}
	tons := math.Floor(amountUSD * steelShareOfAmount / steelUSDPerTon)
	if tons < minVolumeTons {
		return minVolumeTons
	}
	if tons > maxVolumeTons {
		return maxVolumeTons
	}
	return tons
}

// determineUrgency derives urgency from the tender text and deadline:
// urgency words or a deadline under 15 days mean HIGH, under 30 days
// MEDIUM
func (p *PortalClient) determineUrgency(record tenderRecord, text string) contracts.Urgency {
	for _, word := range urgentWords {
		if strings.Contains(text, word) {
			return contracts.UrgencyHigh
		}
	}

	if record.DeadlineAt != "" {
		if deadline, err := time.Parse("2006-01-02", record.DeadlineAt); err == nil {
			days := int(deadline.Sub(p.now()).Hours() / 24)
			if days < 15 {
				return contracts.UrgencyHigh
			}
			if days < 30 {
				return contracts.UrgencyMedium
			}
		}
	}

	return contracts.UrgencyMedium
}

func parsePortalDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
