package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/httputil"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

const (
	maxNewsItems    = 20
	maxScenarioName = 40
)

// relevanceKeywords filter news down to items that concern the steel
// import business at all
var relevanceKeywords = []string{
	"acero", "steel", "metal", "hierro", "iron", "comercio", "trade",
	"arancel", "tariff", "exportación", "export", "importación", "import",
	"china", "minería", "mining", "construcción", "construction",
	"infraestructura", "infrastructure", "logística", "logistics",
	"puerto", "port", "flete", "freight",
}

// crisisKeywords flag an item as crisis-tier rather than opportunity
var crisisKeywords = []string{
	"crisis", "guerra", "war", "huelga", "strike", "escasez", "shortage",
	"interrupción", "disruption", "conflicto", "conflict", "caída",
	"amenaza", "threat", "riesgo", "risk", "recesión", "recession",
	"declive", "corte", "reducción", "embargo", "sanción", "sanction",
}

// categoryKeywords classify an item into the risk taxonomy. First
// match wins, in this order.
var categoryKeywords = []struct {
	category contracts.RiskCategory
	keywords []string
}{
	{contracts.CategoryGeopolitical, []string{"guerra", "war", "conflicto", "conflict", "sanción", "sanction", "embargo", "geopolít"}},
	{contracts.CategoryLogistics, []string{"puerto", "port", "flete", "freight", "naviera", "shipping", "contenedor", "container", "canal", "ruta", "logística", "logistics"}},
	{contracts.CategoryTrade, []string{"arancel", "tariff", "cuota", "quota", "antidumping", "salvaguardia", "safeguard"}},
	{contracts.CategoryDemand, []string{"construcción", "construction", "demanda", "demand", "obra", "vivienda", "housing"}},
	{contracts.CategoryEconomic, []string{"recesión", "recession", "inflación", "inflation", "tasa", "rate", "precio", "price", "mercado", "market"}},
}

// newsItem is one parsed feed entry
type newsItem struct {
	Title       string
	Description string
}

// NewsScanner fetches RSS news and classifies it into the active
// market scenarios the risk gate consumes. Implements
// contracts.ScenarioProvider.
type NewsScanner struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	config     config.NewsConfig
	logger     *logger.Logger
}

// NewNewsScanner creates a news scanner. cache may be nil.
func NewNewsScanner(httpClient *httputil.Client, cache *redis.Cache, cfg config.NewsConfig, log *logger.Logger) *NewsScanner {
	return &NewsScanner{
		httpClient: httpClient,
		cache:      cache,
		config:     cfg,
		logger:     log,
	}
}

// Scenarios fetches the news feed and returns the classified active
// scenarios. An empty news day yields the single sentinel scenario so
// "scanned, nothing relevant" stays distinguishable from "scan failed".
func (n *NewsScanner) Scenarios(ctx context.Context) contracts.Feed[[]contracts.MarketScenario] {
	const cacheKey = "scenarios"
	if n.cache != nil {
		var cached []contracts.MarketScenario
		if hit, err := n.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return contracts.Available(cached)
		}
	}

	body, err := n.httpClient.GetBody(ctx, n.config.BaseURL)
	if err != nil {
		n.logger.WithError(err).Warn("News feed fetch failed")
		return contracts.Unavailable[[]contracts.MarketScenario]("news fetch: " + err.Error())
	}

	items, err := parseFeedItems(body)
	if err != nil {
		n.logger.WithError(err).Warn("News feed parse failed")
		return contracts.Unavailable[[]contracts.MarketScenario]("news parse: " + err.Error())
	}

	scenarios := classifyScenarios(items)

	if n.cache != nil {
		if err := n.cache.Set(ctx, cacheKey, scenarios, n.config.CacheTTL); err != nil {
			n.logger.WithError(err).Debug("Scenario cache write failed")
		}
	}

	n.logger.WithFields(map[string]interface{}{
		"items":     len(items),
		"scenarios": len(scenarios),
	}).Info("News scan completed")

	return contracts.Available(scenarios)
}

// parseFeedItems extracts title/description pairs from an RSS or Atom
// document. goquery's lenient parser tolerates the malformed XML some
// feeds emit.
func parseFeedItems(body []byte) ([]newsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []newsItem
	doc.Find("item, entry").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(items) >= maxNewsItems {
			return false
		}

		title := strings.TrimSpace(sel.Find("title").First().Text())
		if title == "" {
			return true
		}

		desc := strings.TrimSpace(sel.Find("description, summary").First().Text())
		if desc == "" {
			desc = title
		}

		items = append(items, newsItem{Title: title, Description: desc})
		return true
	})

	return items, nil
}

// classifyScenarios turns parsed news items into market scenarios.
// Items with no business-relevant keyword are dropped; an empty result
// becomes the sentinel scenario.
func classifyScenarios(items []newsItem) []contracts.MarketScenario {
	var scenarios []contracts.MarketScenario
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Description)

		hits := keywordHits(text, relevanceKeywords)
		if hits == 0 {
			continue
		}

		impact := contracts.ImpactNormal
		prefix := "Opportunity"
		if keywordHits(text, crisisKeywords) > 0 {
			impact = contracts.ImpactCrisis
			prefix = "Crisis"
		}

		scenarios = append(scenarios, contracts.MarketScenario{
			Name:        fmt.Sprintf("%s: %s", prefix, truncate(item.Title, maxScenarioName)),
			Category:    detectCategory(text),
			Type:        impact,
			Relevance:   relevanceFor(hits),
			Description: item.Description,
			NewsCount:   1,
		})
	}

	if len(scenarios) == 0 {
		return []contracts.MarketScenario{noAlertsScenario()}
	}
	return scenarios
}

func noAlertsScenario() contracts.MarketScenario {
	return contracts.MarketScenario{
		Name:        contracts.ScenarioNoAlerts,
		Type:        contracts.ImpactNormal,
		Relevance:   contracts.RelevanceLow,
		Description: "No relevant alerts or opportunities detected",
	}
}

func detectCategory(text string) contracts.RiskCategory {
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return contracts.CategoryEconomic
}

// relevanceFor grades relevance by keyword density: three or more
// business keywords is HIGH, two MEDIUM, one LOW
func relevanceFor(hits int) contracts.Relevance {
	switch {
	case hits >= 3:
		return contracts.RelevanceHigh
	case hits == 2:
		return contracts.RelevanceMedium
	default:
		return contracts.RelevanceLow
	}
}

func keywordHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
