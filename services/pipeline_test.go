package services

import (
	"context"
	"reflect"
	"testing"

	"upwork-analytics/errors"
	"upwork-analytics/models"
	"upwork-analytics/utils"
)

func TestPipelineDatasetIsCached(t *testing.T) {
	source := &stubSource{key: "upwork-extract.csv", table: fixtureTable()}
	p := NewPipeline(source, utils.NewNopLogger(), 15)
	ctx := context.Background()

	first, err := p.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	second, err := p.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}
	if first != second {
		t.Fatal("Dataset() returned a different pointer on the second call")
	}
	if source.reads != 1 {
		t.Fatalf("source reads = %d, want 1", source.reads)
	}

	reloaded, err := p.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if reloaded == first {
		t.Fatal("Reload() returned the cached dataset")
	}
	if source.reads != 2 {
		t.Fatalf("source reads = %d, want 2", source.reads)
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	ctx := context.Background()
	build := func() *models.Dataset {
		p := NewPipeline(&stubSource{key: "k", table: fixtureTable()}, utils.NewNopLogger(), 15)
		ds, err := p.Build(ctx)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return ds
	}

	a, b := build(), build()
	if !reflect.DeepEqual(a.Postings, b.Postings) {
		t.Fatal("enriched postings differ between runs")
	}
	if !reflect.DeepEqual(a.Skills, b.Skills) {
		t.Fatal("skill aggregates differ between runs")
	}
	if !reflect.DeepEqual(a.Report, b.Report) {
		t.Fatal("reports differ between runs")
	}
}

func TestPipelineLookupByID(t *testing.T) {
	p := NewPipeline(&stubSource{key: "k", table: fixtureTable()}, utils.NewNopLogger(), 15)
	ds, err := p.Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}

	want := ds.Postings[2]
	got, ok := ds.Posting(want.ID)
	if !ok || got != want {
		t.Fatalf("Posting(%s) = %v, %v, want row 2", want.ID, got, ok)
	}
	if _, ok := ds.Posting("missing"); ok {
		t.Fatal("Posting(missing) found a posting")
	}
}

func TestPipelineFailsFast(t *testing.T) {
	ctx := context.Background()

	missing := &stubSource{key: "absent.csv", err: errors.NotFound("input file absent.csv", nil)}
	if _, err := NewPipeline(missing, utils.NewNopLogger(), 15).Dataset(ctx); !errors.Is(err, errors.ErrTypeNotFound) {
		t.Fatalf("Dataset() err = %v, want NOT_FOUND", err)
	}

	noColumns := &stubSource{key: "bad.csv", table: &models.Table{Header: []string{"air3-link"}}}
	p := NewPipeline(noColumns, utils.NewNopLogger(), 15)
	if _, err := p.Dataset(ctx); !errors.Is(err, errors.ErrTypeInvalidInput) {
		t.Fatalf("Dataset() err = %v, want INVALID_INPUT", err)
	}
	if _, err := p.Dataset(ctx); err == nil {
		t.Fatal("failed load was cached")
	}
	if noColumns.reads != 2 {
		t.Fatalf("source reads = %d, want 2", noColumns.reads)
	}
}

func TestPipelineFailedReloadKeepsDataset(t *testing.T) {
	source := &stubSource{key: "upwork-extract.csv", table: fixtureTable()}
	p := NewPipeline(source, utils.NewNopLogger(), 15)
	ctx := context.Background()

	first, err := p.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}

	source.err = errors.NotFound("input file upwork-extract.csv", nil)
	if _, err := p.Reload(ctx); !errors.Is(err, errors.ErrTypeNotFound) {
		t.Fatalf("Reload() err = %v, want NOT_FOUND", err)
	}

	got, err := p.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset() after failed Reload error = %v", err)
	}
	if got != first {
		t.Fatal("Dataset() after failed Reload did not return the previous dataset")
	}

	source.err = nil
	reloaded, err := p.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got, _ := p.Dataset(ctx); got != reloaded {
		t.Fatal("Dataset() did not return the reloaded dataset")
	}
}
