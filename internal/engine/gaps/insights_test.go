package gaps

import (
	"context"
	"testing"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/stretchr/testify/assert"
)

func TestEnrichReportNotConfigured(t *testing.T) {
	engine.Init(engine.Config{})
	defer engine.Init(engine.Config{})

	r := Report{
		Source:     "youtube",
		PainPoints: []PainPoint{{Category: CategoryPacing, Keyword: "too fast"}},
	}
	EnrichReport(context.Background(), &r)

	assert.Nil(t, r.Insights)
	assert.Equal(t, "llm not configured", r.InsightsSkipped)
}

func TestEnrichReportNoPainPoints(t *testing.T) {
	engine.Init(engine.Config{
		LLMAPIKey: "test-key",
		LLMClient: llm.NewClient("http://localhost", "test-key", "test-model"),
	})
	defer engine.Init(engine.Config{})

	r := Report{Source: "youtube"}
	EnrichReport(context.Background(), &r)

	assert.Nil(t, r.Insights)
	assert.Equal(t, "no pain points detected", r.InsightsSkipped)
}
