package narrative

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/astro-prediction/internal/domain/astro"
	"github.com/yanqian/astro-prediction/pkg/metrics"
)

func TestRenderFacts(t *testing.T) {
	planets := []astro.PlanetEntry{
		{Name: "Солнце", Sign: "Лев", Nakshatra: "Магха", House: astro.House(`5`)},
		{Name: "Луна", Sign: "Рак", Nakshatra: "Пушья", House: astro.House(`"4"`)},
	}
	periods := []astro.DashaPeriod{
		{Planet: "Раху", Start: "12-03-2010 00:00", End: "12-03-2030 00:00"},
	}

	got := RenderFacts(2026, planets, periods)
	require.Equal(t, `Астрологические данные:

Положение планет в натальной карте:
- Солнце: в знаке Лев, Накшатра Магха, 5 дом
- Луна: в знаке Рак, Накшатра Пушья, 4 дом

Махадаша на 2026 год:
- Планета Раху: период с 12-03-2010 00:00 по 12-03-2030 00:00
`, got)
}

func TestBuildPromptEmbedsFactsAndYear(t *testing.T) {
	prompt := BuildPrompt(2027, "FACTS")
	require.True(t, strings.HasPrefix(prompt, "FACTS\n\n"))
	require.Contains(t, prompt, "прогноз на 2027 год (1-2 абзаца)")
	require.Contains(t, prompt, "Во втором абзаце дай практические рекомендации")
	require.Contains(t, prompt, "Избегай негатива")
}

func TestComposeSuccess(t *testing.T) {
	gen := &stubGenerator{gen: Generation{Text: "  Прогноз.\n", Usage: metrics.TokenUsage{PromptTokens: 10, TotalTokens: 20}}}
	c := newComposerUnderTest(gen)

	text, err := c.Compose(context.Background(), []astro.PlanetEntry{{Name: "Солнце"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "Прогноз.", text)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	require.Equal(t, "system persona", req.System)
	require.Contains(t, req.Prompt, "- Солнце: в знаке")
	require.True(t, strings.HasPrefix(req.SessionID, "astro_1767225600000000000_"))
}

func TestComposeFreshSessionPerCall(t *testing.T) {
	gen := &stubGenerator{gen: Generation{Text: "ok"}}
	c := newComposerUnderTest(gen)

	_, err := c.Compose(context.Background(), nil, nil)
	require.NoError(t, err)
	_, err = c.Compose(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, gen.requests, 2)
	require.NotEqual(t, gen.requests[0].SessionID, gen.requests[1].SessionID)
}

func TestComposeErrors(t *testing.T) {
	c := newComposerUnderTest(&stubGenerator{err: errors.New("quota exceeded")})
	_, err := c.Compose(context.Background(), nil, nil)
	require.ErrorContains(t, err, "quota exceeded")

	c = newComposerUnderTest(&stubGenerator{gen: Generation{Text: "  "}})
	_, err = c.Compose(context.Background(), nil, nil)
	require.ErrorContains(t, err, "empty text")
}

func TestComposeCountsTokensWithoutBlocking(t *testing.T) {
	t.Setenv("TIKTOKEN_CACHE_DIR", t.TempDir())
	gen := &stubGenerator{gen: Generation{Text: "Прогноз."}}
	c := NewComposer(Config{TargetYear: 2026, Model: "gpt-5.1"}, gen, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := c.Compose(ctx, []astro.PlanetEntry{{Name: "Солнце"}}, nil)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
		require.Len(t, gen.requests, 1)
	case <-ctx.Done():
		t.Fatal("compose did not reach the generator before the deadline")
	}
}

func newComposerUnderTest(gen Generator) *Composer {
	c := NewComposer(Config{TargetYear: 2026, SystemPrompt: "system persona", Model: "gpt-test"}, gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	c.countTokens = func(model, text string) int { return len(text) }
	return c
}

type stubGenerator struct {
	gen      Generation
	err      error
	requests []GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req GenerateRequest) (Generation, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return Generation{}, s.err
	}
	return s.gen, nil
}
