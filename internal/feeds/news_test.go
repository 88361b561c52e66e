package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/httputil"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0">
<channel>
<title>Economia</title>
<item>
  <title>Guerra comercial: China responde con aranceles al acero</title>
  <description>El conflicto escala y amenaza las exportaciones de acero</description>
</item>
<item>
  <title>Huelga en puerto paraliza contenedores</title>
  <description>La huelga interrumpe la logística de fletes</description>
</item>
<item>
  <title>Festival gastronómico bate récord de asistencia</title>
  <description>Miles de visitantes en la feria local</description>
</item>
</channel>
</rss>`

func TestParseFeedItems(t *testing.T) {
	items, err := parseFeedItems([]byte(sampleRSS))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Guerra comercial: China responde con aranceles al acero", items[0].Title)
	assert.Contains(t, items[1].Description, "huelga")
}

func TestClassifyScenarios(t *testing.T) {
	items, err := parseFeedItems([]byte(sampleRSS))
	require.NoError(t, err)

	scenarios := classifyScenarios(items)
	// the gastronomy item has no business keyword and is dropped
	require.Len(t, scenarios, 2)

	first := scenarios[0]
	assert.Equal(t, contracts.ImpactCrisis, first.Type)
	assert.Equal(t, contracts.CategoryGeopolitical, first.Category)
	assert.Equal(t, contracts.RelevanceHigh, first.Relevance)
	assert.Contains(t, first.Name, "Crisis:")
	assert.True(t, first.IsActionable())

	second := scenarios[1]
	assert.Equal(t, contracts.ImpactCrisis, second.Type)
	assert.Equal(t, contracts.CategoryLogistics, second.Category)
}

func TestClassifyScenarios_EmptyYieldsSentinel(t *testing.T) {
	scenarios := classifyScenarios(nil)
	require.Len(t, scenarios, 1)
	assert.Equal(t, contracts.ScenarioNoAlerts, scenarios[0].Name)
	assert.False(t, scenarios[0].IsActionable())

	// irrelevant-only input degrades to the same sentinel
	scenarios = classifyScenarios([]newsItem{{Title: "Festival de cine anuncia a sus ganadores"}})
	require.Len(t, scenarios, 1)
	assert.Equal(t, contracts.ScenarioNoAlerts, scenarios[0].Name)
}

func TestRelevanceFor(t *testing.T) {
	assert.Equal(t, contracts.RelevanceLow, relevanceFor(1))
	assert.Equal(t, contracts.RelevanceMedium, relevanceFor(2))
	assert.Equal(t, contracts.RelevanceHigh, relevanceFor(3))
	assert.Equal(t, contracts.RelevanceHigh, relevanceFor(7))
}

func TestScenarios_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	scanner := NewNewsScanner(
		httputil.New(logger.NewNop()).DisableRetry(),
		nil,
		config.NewsConfig{BaseURL: server.URL},
		logger.NewNop(),
	)

	feed := scanner.Scenarios(context.Background())
	require.True(t, feed.Available)
	assert.Len(t, feed.Data, 2)
}

func TestScenarios_FetchFailureIsUnavailable(t *testing.T) {
	scanner := NewNewsScanner(
		httputil.New(logger.NewNop()).DisableRetry(),
		nil,
		config.NewsConfig{BaseURL: "http://127.0.0.1:1"},
		logger.NewNop(),
	)

	feed := scanner.Scenarios(context.Background())
	assert.False(t, feed.Available)
	assert.NotEmpty(t, feed.Reason)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := "a very long headline that exceeds the scenario name limit"
	assert.Equal(t, long[:40]+"...", truncate(long, 40))
}
