package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/folioparse/internal/parser"
	"github.com/dgallion1/folioparse/internal/portfolio"
	"github.com/dgallion1/folioparse/internal/profile"
	"github.com/dgallion1/folioparse/internal/stats"
)

// Worker processes a single import job.
type Worker struct {
	jobs     *JobStore
	profiles *profile.Parser
	latency  *stats.Latency
	log      *slog.Logger
	opts     parser.Options
}

func NewWorker(jobs *JobStore, latency *stats.Latency, log *slog.Logger, opts parser.Options) *Worker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		jobs:     jobs,
		profiles: profile.New(log),
		latency:  latency,
		log:      log,
		opts:     opts,
	}
}

// Process runs extraction, sectioning and portfolio mapping for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 0: Dedup against finished jobs still held in the store.
	if w.jobs != nil {
		if orig := w.jobs.CompletedByHash(job.ContentHash, job.ID); orig != nil {
			log.Info("duplicate upload, reusing result", "original_job_id", orig.ID)
			job.MarkDuplicate(orig)
			job.releaseFileData()
			return
		}
	}

	// Phase 1: Extract lines
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetExtracted(doc.Title, doc.Pages, len(doc.Lines))
	log.Info("extracted lines", "pages", doc.Pages, "lines", len(doc.Lines))
	if len(doc.Lines) == 0 {
		log.Warn("no text extracted")
	}

	// Phase 2: Section the lines into a record
	job.SetStatus(StatusSectioning, "sectioning")
	rec := w.profiles.Parse(doc.Lines)
	job.SetRecord(rec)

	// Phase 3: Map onto the portfolio shape
	job.SetStatus(StatusMapping, "mapping")
	job.SetPortfolio(portfolio.FromRecord(rec))

	if w.latency != nil {
		w.latency.Observe(start)
	}
	log.Info("import complete",
		"positions", len(rec.Positions),
		"education", len(rec.Education),
		"skills", len(rec.Skills),
	)
	job.SetStatus(StatusCompleted, "done")
}
