package workflows

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PolarWolf314/n8nsync/internal/audit"
	"github.com/PolarWolf314/n8nsync/internal/configs"
	logger "github.com/PolarWolf314/n8nsync/internal/logging"
	"github.com/PolarWolf314/n8nsync/internal/manifest"
	"github.com/PolarWolf314/n8nsync/internal/n8n"
	"github.com/PolarWolf314/n8nsync/internal/normalize"
	"github.com/PolarWolf314/n8nsync/internal/record"
	"github.com/PolarWolf314/n8nsync/internal/redact"
	"github.com/PolarWolf314/n8nsync/internal/utils"
)

// Fetcher reads workflows from an n8n instance. *n8n.Client implements it.
type Fetcher interface {
	ListWorkflows(ctx context.Context) (*n8n.Page, error)
	ListAllWorkflows(ctx context.Context) ([]n8n.WorkflowSummary, error)
	GetWorkflow(ctx context.Context, id string) (*record.Value, error)
}

// PullOptions configures the pull workflow.
type PullOptions struct {
	// Config is the validated configuration. Required.
	Config *configs.Config

	// Fetcher defaults to an n8n.Client built from Config.
	Fetcher Fetcher

	Logger logger.Logger

	// Now defaults to time.Now and stamps the manifest.
	Now func() time.Time

	// OnList is called once the workflow list is known.
	OnList func(total int)

	// OnProgress is called after each workflow is written or skipped.
	OnProgress func(ProgressEvent)
}

// ProgressEvent reports one processed workflow.
type ProgressEvent struct {
	// Index is 1-based; Total is the number of listed workflows.
	Index int
	Total int

	Name    string
	Skipped bool

	// Entry and Redactions are set for written workflows.
	Entry      manifest.Entry
	Path       string
	Redactions redact.Report
}

// Collision records a workflow file that was written more than once.
type Collision struct {
	File string

	// Names are the workflow names mapped to File, in write order.
	Names []string
}

// PullResult contains the outcome of a pull operation.
type PullResult struct {
	Manifest     *manifest.Manifest
	ManifestPath string
	OutputDir    string

	// Skipped holds the names of workflows matched by an exclude pattern.
	Skipped []string

	Collisions []Collision

	// Redactions totals the replacements over all written workflows.
	Redactions redact.Report

	// MorePages is true when the instance reported further workflows that
	// were not fetched because follow_pagination is off.
	MorePages bool
}

// Written returns the number of workflow files written.
func (r *PullResult) Written() int {
	if r.Manifest == nil {
		return 0
	}
	return len(r.Manifest.Workflows)
}

// Pull exports every workflow of the configured instance.
//
// Each workflow is fetched, its nodes are redacted, staticData is cleared,
// instance metadata is stripped, and it is written as indented JSON to
// OutputDir. The manifest is written last. Workflows are processed one at a
// time in list order; the first error aborts the run, leaving files already
// written in place and the previous manifest untouched.
//
// A run history entry is appended to the audit log on success and failure.
func Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("pull: no configuration")
	}
	log := opts.Logger

	entry := audit.NewEntry(audit.OpPull)
	entry.Source = cfg.BaseURL
	entry.OutputDir = cfg.OutputDir
	entry.ManifestPath = cfg.ManifestPath

	result, err := pull(ctx, opts)
	if result != nil {
		entry.WorkflowsCount = result.Written()
		entry.SkippedCount = len(result.Skipped)
		entry.SecretsRedacted = result.Redactions.Secrets
		entry.CertificatesRedacted = result.Redactions.Certificates
	}
	if err != nil {
		entry.Status = audit.StatusFailure
		entry.Error = err.Error()
	} else {
		entry.Status = audit.StatusSuccess
	}

	if cfg.AuditEnabled() {
		if logErr := audit.Log(cfg.AuditLog, entry); logErr != nil {
			log.Warnf("Could not record run history in %s: %v", cfg.AuditLog, logErr)
		}
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

func pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	cfg := opts.Config
	log := opts.Logger

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = n8n.NewClient(cfg, log)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	result := &PullResult{
		ManifestPath: cfg.ManifestPath,
		OutputDir:    cfg.OutputDir,
	}

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	summaries, more, err := listWorkflows(ctx, fetcher, cfg.FollowPagination)
	if err != nil {
		return result, err
	}
	result.MorePages = more
	if more {
		log.WarnfAlways("The instance has more than %d workflows; only the first page was exported. Set follow_pagination = true to export all of them.", n8n.PageLimit)
	}
	log.Infof("Found %d workflows", len(summaries))
	if opts.OnList != nil {
		opts.OnList(len(summaries))
	}

	checkPreviousManifest(cfg, log)

	m := manifest.New(cfg.BaseURL, now())
	result.Manifest = m

	redactor := redact.New(redact.DefaultPolicy().WithExtraKeywords(cfg.ExtraSensitiveKeys...))
	names := make(map[string][]string)
	var files []string

	for i, s := range summaries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event := ProgressEvent{Index: i + 1, Total: len(summaries), Name: s.Name}

		if cfg.Excluded(s.Name) {
			log.Infof("Skipping %q (excluded)", s.Name)
			result.Skipped = append(result.Skipped, s.Name)
			event.Skipped = true
			if opts.OnProgress != nil {
				opts.OnProgress(event)
			}
			continue
		}

		rec, err := fetcher.GetWorkflow(ctx, s.ID)
		if err != nil {
			return result, err
		}

		rep, file, err := exportWorkflow(rec, redactor, cfg)
		if err != nil {
			return result, fmt.Errorf("exporting workflow %s: %w", s.ID, err)
		}
		name := normalize.Name(rec)

		if prev := names[file]; len(prev) > 0 {
			log.WarnfAlways("%q overwrites %s, already written for %q", name, file, prev[len(prev)-1])
		} else {
			files = append(files, file)
		}
		names[file] = append(names[file], name)

		e := manifest.Entry{Name: name, SourceID: s.ID, File: file}
		m.Add(e)
		result.Redactions = result.Redactions.Add(rep)
		log.Debugf("Wrote %s (%d secrets, %d certificates redacted)", file, rep.Secrets, rep.Certificates)

		event.Entry = e
		event.Path = filepath.Join(cfg.OutputDir, file)
		event.Redactions = rep
		if opts.OnProgress != nil {
			opts.OnProgress(event)
		}
	}
	for _, file := range files {
		if len(names[file]) > 1 {
			result.Collisions = append(result.Collisions, Collision{File: file, Names: names[file]})
		}
	}

	if err := manifest.Write(cfg.ManifestPath, m); err != nil {
		return result, err
	}
	log.Infof("Wrote manifest %s with %d entries", cfg.ManifestPath, len(m.Workflows))
	return result, nil
}

// checkPreviousManifest reports the last sync recorded at cfg.ManifestPath
// and warns when it came from a different instance.
func checkPreviousManifest(cfg *configs.Config, log logger.Logger) {
	prev, err := manifest.Read(cfg.ManifestPath)
	if err != nil {
		log.Debugf("No previous manifest at %s: %v", cfg.ManifestPath, err)
		return
	}
	if t, err := prev.LastSyncTime(); err == nil {
		log.Infof("Previous sync from %s at %s", prev.SourceInstance, t.Format(time.RFC3339))
	}
	if prev.SourceInstance != "" && strings.TrimRight(prev.SourceInstance, "/") != strings.TrimRight(cfg.BaseURL, "/") {
		log.WarnfAlways("%s was last synced from %s and will now describe %s", cfg.ManifestPath, prev.SourceInstance, cfg.BaseURL)
	}
}

func listWorkflows(ctx context.Context, f Fetcher, all bool) ([]n8n.WorkflowSummary, bool, error) {
	if all {
		summaries, err := f.ListAllWorkflows(ctx)
		return summaries, false, err
	}
	page, err := f.ListWorkflows(ctx)
	if err != nil {
		return nil, false, err
	}
	return page.Workflows, page.NextCursor != "", nil
}

// exportWorkflow normalizes rec in place and writes it under cfg.OutputDir,
// returning the redaction counts and the file name used.
func exportWorkflow(rec *record.Value, r *redact.Redactor, cfg *configs.Config) (redact.Report, string, error) {
	var rep redact.Report
	if nodes, ok := rec.Get("nodes"); ok {
		rep = r.Redact(nodes)
	}
	normalize.ClearStaticData(rec)

	file := normalize.FileName(normalize.Name(rec))

	normalize.StripInstanceMetadata(rec)
	if cfg.StripActive {
		normalize.StripActive(rec)
	}

	var buf bytes.Buffer
	if err := rec.EncodeJSON(&buf, "  "); err != nil {
		return rep, file, err
	}
	if err := utils.WriteFileAtomic(filepath.Join(cfg.OutputDir, file), buf.Bytes(), 0o644); err != nil {
		return rep, file, err
	}
	return rep, file, nil
}
