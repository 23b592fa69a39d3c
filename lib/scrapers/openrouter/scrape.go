package openrouter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"providerwatch/lib/catalog"
	"providerwatch/lib/htmlutil"
	"providerwatch/lib/normalize"
	"providerwatch/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// selectors mirror the current openrouter.ai markup, tailwind classes and all
const (
	selectProviderPanel = `div.flex.flex-col.gap-3`
	selectProviderRow   = `tr.flex.flex-col.py-4.border-t.border-border\/50`
	selectProviderName  = `a.text-muted-foreground\/80`
	selectMetricCells   = `div.flex.flex-wrap.items-center.justify-between.gap-8 div.text-lg`
)

// BuildSnapshot fetches a model's page and extracts its provider rows in
// document order. A page without a provider breakdown yields the sentinel
// snapshot, only transport/parse failures on the page itself are errors.
func (c *Client) BuildSnapshot(ctx context.Context, modelId string) ([]catalog.Provider, error) {
	ctx, span := tracer.Start(ctx, "BuildSnapshot")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.ModelUrl(modelId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch model page")
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		err := fmt.Errorf("fetch model page: unexpected status '%s'", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch model page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse model page")
		return nil, err
	}

	return scrapeProviders(ctx, doc), nil
}

func scrapeProviders(ctx context.Context, doc *goquery.Document) []catalog.Provider {
	panel := doc.Find(selectProviderPanel)
	if panel.Length() == 0 {
		slog.InfoContext(ctx, "no provider panel, model may not support provider selection")
		return catalog.Sentinel()
	}

	rows := doc.Find(selectProviderRow)
	if rows.Length() == 0 {
		slog.InfoContext(ctx, "no provider rows found on the page")
		return catalog.Sentinel()
	}
	slog.DebugContext(ctx, "found provider rows", "count", rows.Length())

	var providers []catalog.Provider
	rows.Each(func(i int, row *goquery.Selection) {
		provider, err := scrapeRow(row)
		if err != nil {
			// a malformed row shouldn't take down the whole snapshot
			slog.WarnContext(ctx, "skipping provider row", "row", i, "err", err)
			return
		}
		providers = append(providers, provider)
	})

	return providers
}

func scrapeRow(row *goquery.Selection) (catalog.Provider, error) {
	nameEl := row.Find(selectProviderName).First()
	if nameEl.Length() == 0 {
		return catalog.Provider{}, fmt.Errorf("no name element found")
	}
	name := textutil.ProviderSlug(htmlutil.CleanText(htmlutil.GetText(nameEl.Nodes[0])))

	cells := row.Find(selectMetricCells)
	if cells.Length() < 6 {
		return catalog.Provider{}, fmt.Errorf("expected 6 metric cells, got %d", cells.Length())
	}

	values := make([]*string, 6)
	for i := range values {
		text := htmlutil.CleanText(cells.Eq(i).Text())
		values[i] = &text
	}

	return catalog.Provider{
		Name: &name,
		Metrics: catalog.Metrics{
			ContextLength:             normalize.Int(values[0]),
			MaxOutputTokens:           normalize.Int(values[1]),
			InputPricePerMillion:      normalize.Decimal(values[2]),
			OutputPricePerMillion:     normalize.Decimal(values[3]),
			LatencySeconds:            normalize.Latency(values[4]),
			ThroughputTokensPerSecond: normalize.Throughput(values[5]),
		},
	}, nil
}
