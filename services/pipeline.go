package services

import (
	"context"
	"time"

	"upwork-analytics/errors"
	"upwork-analytics/models"
	"upwork-analytics/storage"
	"upwork-analytics/telemetry"
	"upwork-analytics/utils"

	"go.opentelemetry.io/otel/trace"
)

// Pipeline runs load → rename → enrich → aggregate → report and keeps the
// result for the life of the process
type Pipeline struct {
	source     storage.TableSource
	enricher   *Enricher
	aggregator *SkillAggregator
	insights   *InsightService
	cache      *utils.Memo[*models.Dataset]
	logger     *utils.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewPipeline wires the pipeline stages around a table source
func NewPipeline(source storage.TableSource, logger *utils.Logger, topSkills int) *Pipeline {
	return &Pipeline{
		source:     source,
		enricher:   NewEnricher(logger),
		aggregator: NewSkillAggregator(logger),
		insights:   NewInsightService(logger, topSkills),
		cache:      utils.NewMemo[*models.Dataset](),
		logger:     logger,
		tracer:     telemetry.GetTracer("upwork-analytics/services"),
		now:        time.Now,
	}
}

// Dataset returns the cached dataset, building it on first use
func (p *Pipeline) Dataset(ctx context.Context) (*models.Dataset, error) {
	return p.cache.Get(p.source.Key(), func() (*models.Dataset, error) {
		return p.Build(ctx)
	})
}

// Reload rebuilds the dataset and swaps it into the cache. When the rebuild
// fails the previously cached dataset keeps being served.
func (p *Pipeline) Reload(ctx context.Context) (*models.Dataset, error) {
	p.logger.Info("Rebuilding dataset for: %s", p.source.Key())
	ds, err := p.Build(ctx)
	if err != nil {
		p.logger.Warn("Reload of %s failed, keeping the current dataset: %v", p.source.Key(), err)
		return nil, err
	}
	p.cache.Set(p.source.Key(), ds)
	return ds, nil
}

// Build runs every stage without consulting the cache
func (p *Pipeline) Build(ctx context.Context) (*models.Dataset, error) {
	ctx, span := p.tracer.Start(ctx, "Pipeline.Build")
	defer span.End()
	span.SetAttributes(telemetry.String("source", p.source.Key()))

	raw, err := p.load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, enrichSpan := p.tracer.Start(ctx, "Pipeline.enrich")
	postings := p.enricher.Enrich(raw)
	enrichSpan.SetAttributes(telemetry.Int("postings.count", len(postings)))
	enrichSpan.End()

	_, aggSpan := p.tracer.Start(ctx, "Pipeline.aggregate")
	skills := p.aggregator.Aggregate(postings)
	report := p.insights.Generate(postings, skills)
	aggSpan.SetAttributes(telemetry.Int("skills.count", len(skills)))
	aggSpan.End()

	return models.NewDataset(p.source.Key(), p.now(), postings, skills, report), nil
}

func (p *Pipeline) load(ctx context.Context) ([]*models.RawPosting, error) {
	_, span := p.tracer.Start(ctx, "Pipeline.load")
	defer span.End()

	table, err := p.source.ReadTable()
	if err != nil {
		p.logger.Error("Failed to load %s: %v", p.source.Key(), err)
		return nil, err
	}

	raw, err := BuildRawPostings(RenameColumns(table))
	if err != nil {
		p.logger.Error("Input %s is not usable: %v", p.source.Key(), err)
		return nil, errors.InvalidInput("building raw postings from "+p.source.Key(), err)
	}
	span.SetAttributes(telemetry.Int("rows.count", len(raw)))
	return raw, nil
}
