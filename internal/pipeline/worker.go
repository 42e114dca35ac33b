package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paperlens/paperlens/internal/engine"
	"github.com/paperlens/paperlens/internal/parser"
	"github.com/paperlens/paperlens/internal/store"
	"github.com/paperlens/paperlens/internal/summarize"
)

// Worker processes a single document job.
type Worker struct {
	db          *store.DB
	log         *slog.Logger
	opts        engine.Options
	stats       *JobStats
	pdfFallback bool
}

func NewWorker(db *store.DB, log *slog.Logger, opts engine.Options, stats *JobStats, pdfFallback bool) *Worker {
	return &Worker{
		db:          db,
		log:         log,
		opts:        opts,
		stats:       stats,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()

	// Dedup check before any analysis work. The content hash is computed
	// from the raw upload at submit time.
	existing, err := w.db.GetByHash(job.ContentHash)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != nil {
		log.Info("duplicate document, skipping", "existing_doc_id", existing.DocID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 1: Extract text blocks.
	job.SetStatus(StatusExtracting, "extracting")
	ext, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if pdfExt, ok := ext.(*parser.PDFExtractor); ok {
		pdfExt.FallbackPdftotext = w.pdfFallback
	}

	blocks, extractedTitle, err := ext.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetTotalBlocks(len(blocks))
	log.Info("extracted blocks", "blocks", len(blocks))

	// Phase 2: Structure the document.
	job.SetStatus(StatusStructuring, "structuring")
	opts := w.opts
	if job.Title != "" {
		opts.Title = job.Title
	} else if extractedTitle != "" {
		opts.Title = extractedTitle
	}

	doc, err := engine.Build(ctx, blocks, opts)
	if err != nil {
		log.Error("structuring failed", "error", err)
		job.AddError(fmt.Sprintf("structure: %s", err))
		job.SetStatus(StatusFailed, "structuring")
		return
	}
	job.SetTitle(doc.Title)
	job.SetStructure(len(doc.Sections), len(doc.References), len(doc.Citations))
	log.Info("structured document",
		"sections", len(doc.Sections),
		"references", len(doc.References),
		"citations", len(doc.Citations),
	)

	// Phase 3: Summarize body sections.
	job.SetStatus(StatusSummarizing, "summarizing")
	summaries := summarize.Document(doc, opts.SummarySentences)

	// Phase 4: Store, retrying transient database failures.
	job.SetStatus(StatusStoring, "storing")
	rec := store.Record{
		DocID:       job.DocID,
		ContentHash: job.ContentHash,
		Title:       doc.Title,
		Filename:    job.Filename,
		CreatedAt:   job.CreatedAt,
		Document:    doc,
		Summaries:   summaries,
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.db.Put(rec)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "storing")
			return
		}
	}
	if lastErr != nil {
		log.Error("store failed", "error", lastErr)
		job.AddError(fmt.Sprintf("store: %s", lastErr))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
	elapsed := time.Since(start).Milliseconds()
	if w.stats != nil {
		w.stats.Record(elapsed)
	}
	log.Info("analysis complete", "duration_ms", elapsed)
}
