package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
	"github.com/vradovic/fakebench/internal/bench/runner"
)

// MisclassDoc is one misclassified test sample, indexed so analysts can
// slice errors by model, label, or probability band.
type MisclassDoc struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	JobName     string    `json:"job_name"`
	ModelName   string    `json:"model_name"`
	SampleID    string    `json:"sample_id"`
	Path        string    `json:"path"`
	Probability float64   `json:"probability"`
	Threshold   float64   `json:"threshold"`
	Label       int       `json:"label"`
	Predicted   int       `json:"predicted"`
	IndexedAt   time.Time `json:"indexed_at"`
}

type MisclassIndexer struct {
	client    *elasticsearch.TypedClient
	indexName string
	config    ClientConfig
}

func NewMisclassIndexer(ctx context.Context, config ClientConfig) (*MisclassIndexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &MisclassIndexer{
		client:    client,
		indexName: config.IndexName,
		config:    config,
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

// IndexRun bulk-indexes every misclassified outcome of the run.
func (ix *MisclassIndexer) IndexRun(ctx context.Context, runID uuid.UUID, rr *runner.RunResult) error {
	docs := CollectMisclassified(runID, rr)
	if len(docs) == 0 {
		slog.Info("no misclassified samples to index", "run_id", runID)
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         ix.indexName,
		Client:        ix.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed int64

	for _, doc := range docs {
		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful++
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed++
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("misclassification indexing completed",
		"successful", successful,
		"failed", failed,
		"total", len(docs),
		"index", ix.indexName)

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d documents", failed, len(docs))
	}

	return nil
}

// CollectMisclassified flattens every incorrect outcome into index documents.
// The threshold recorded per document is the one the model operated at.
func CollectMisclassified(runID uuid.UUID, rr *runner.RunResult) []MisclassDoc {
	now := time.Now()

	var docs []MisclassDoc
	for _, jr := range rr.Jobs {
		for _, name := range jr.ModelOrder {
			mr := jr.Results[name]
			if mr.Err != nil {
				continue
			}

			threshold := rr.Config.DefaultThreshold
			if mr.Tuned {
				threshold = mr.TunedThreshold
			}

			for _, o := range mr.Outcomes {
				if o.Correct {
					continue
				}
				docs = append(docs, MisclassDoc{
					ID:          fmt.Sprintf("%s:%s:%s:%s", runID, jr.JobName, name, o.SampleID),
					RunID:       runID.String(),
					JobName:     jr.JobName,
					ModelName:   name,
					SampleID:    o.SampleID,
					Path:        o.Path,
					Probability: o.Probability,
					Threshold:   threshold,
					Label:       o.Label,
					Predicted:   o.Predicted,
					IndexedAt:   now,
				})
			}
		}
	}
	return docs
}

func (ix *MisclassIndexer) EnsureIndex(ctx context.Context) error {
	existsRes, err := ix.client.Indices.Exists(ix.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("index already exists", "index", ix.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"run_id":      types.NewKeywordProperty(),
			"job_name":    types.NewKeywordProperty(),
			"model_name":  types.NewKeywordProperty(),
			"sample_id":   types.NewKeywordProperty(),
			"path":        types.NewKeywordProperty(),
			"probability": types.NewDoubleNumberProperty(),
			"threshold":   types.NewDoubleNumberProperty(),
			"label":       types.NewIntegerNumberProperty(),
			"predicted":   types.NewIntegerNumberProperty(),
			"indexed_at":  types.NewDateProperty(),
		},
	}

	createRes, err := ix.client.Indices.Create(ix.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("index created successfully", "index", ix.indexName)
	return nil
}
