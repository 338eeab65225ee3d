// Package extraction converts unstructured privacy-policy documents
// into structured records linking personal data items, their taxonomy
// category, the usage scenario, and the action performed on them. A
// document is split along its numbering scheme into paragraphs; each
// paragraph runs through a model-driven annotation pipeline; the
// per-paragraph records are flattened into one denormalized row per
// action triple.
package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/orange24122/extraction/annotate"
	"github.com/orange24122/extraction/llm"
	"github.com/orange24122/extraction/parser"
	"github.com/orange24122/extraction/splitter"
	"github.com/orange24122/extraction/store"
	"github.com/orange24122/extraction/taxonomy"
)

// Output file names, fixed for downstream consumers.
const (
	nestedResultsFile = "processed_results.json"
	flatResultsFile   = "final_structured_results.json"
)

// paragraphTimeout caps one paragraph's pipeline: four sequential
// oracle calls plus the classifier's extra attempt.
const paragraphTimeout = 5 * time.Minute

// PolicyResult is the nested per-policy output structure.
type PolicyResult struct {
	Name       string                     `json:"隐私政策名称"`
	Paragraphs []annotate.ParagraphRecord `json:"处理后内容"`
}

// Engine runs the extraction pipeline.
type Engine struct {
	cfg       Config
	schema    *taxonomy.Schema
	annotator *annotate.Annotator
	store     *store.Store // nil when persistence is disabled
}

// New creates an Engine from configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}

	provider, err := llm.NewProvider(cfg.Oracle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	schema := taxonomy.Default()
	if cfg.SchemaPath != "" {
		schema, err = taxonomy.Load(cfg.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	annotator := annotate.New(provider, schema, annotate.Config{
		Model:       cfg.Oracle.Model,
		Temperature: cfg.Temperature,
		DumpDir:     filepath.Join(cfg.OutDir, "diagnostics"),
	})

	var s *store.Store
	if cfg.DBPath != "" {
		s, err = store.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
	}

	return &Engine{cfg: cfg, schema: schema, annotator: annotator, store: s}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// ProcessDocument splits one policy text and annotates its paragraphs
// across a bounded worker pool. Paragraphs are read-only once split and
// each worker only writes its own slot, so they parallelize freely; a
// failed or panicked paragraph is logged and omitted without affecting
// its siblings. Paragraph order is restored by ordinal in the result.
func (e *Engine) ProcessDocument(ctx context.Context, name, text string) (*PolicyResult, error) {
	paras := splitter.Split(text)
	slog.Info("extract: document split",
		"policy", name, "depth", splitter.DetectDepth(text), "paragraphs", len(paras))

	records := make([]*annotate.ParagraphRecord, len(paras))
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.cfg.Concurrency)

	for i, para := range paras {
		wg.Add(1)
		go func(ordinal int, text string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("extract: paragraph pipeline panicked",
						"policy", name, "paragraph", ordinal, "panic", r)
				}
			}()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			pctx, cancel := context.WithTimeout(ctx, paragraphTimeout)
			defer cancel()

			start := time.Now()
			rec, err := e.annotator.AnnotateParagraph(pctx, ordinal, text)
			if err != nil {
				slog.Warn("extract: paragraph skipped",
					"policy", name, "paragraph", ordinal, "error", err)
				return
			}
			records[ordinal-1] = rec
			slog.Info("extract: paragraph annotated",
				"policy", name, "paragraph", ordinal,
				"entities", len(rec.Entities), "scenes", len(rec.SceneTags),
				"relations", len(rec.Relations),
				"elapsed", time.Since(start).Round(time.Millisecond))
		}(i+1, para)
	}
	wg.Wait()

	kept := make([]annotate.ParagraphRecord, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			kept = append(kept, *rec)
		}
	}
	if dropped := len(paras) - len(kept); dropped > 0 {
		slog.Warn("extract: document completed with dropped paragraphs",
			"policy", name, "kept", len(kept), "dropped", dropped)
	}

	return &PolicyResult{Name: name, Paragraphs: kept}, ctx.Err()
}

// ProcessPolicies runs the pipeline over a set of policies. Results
// accumulate per policy; one policy's failure or cancellation mid-run
// still leaves the completed results usable.
func (e *Engine) ProcessPolicies(ctx context.Context, policies []parser.Policy) ([]PolicyResult, []annotate.FlatRecord, error) {
	var results []PolicyResult
	var flat []annotate.FlatRecord

	for _, p := range policies {
		hash := textHash(p.Text)

		if e.store != nil && e.cfg.SkipUnchanged {
			stored, err := e.store.PolicyHash(ctx, p.Name)
			if err != nil {
				slog.Warn("extract: hash lookup failed", "policy", p.Name, "error", err)
			} else if stored == hash {
				slog.Info("extract: policy unchanged, skipping", "policy", p.Name)
				continue
			}
		}

		result, err := e.ProcessDocument(ctx, p.Name, p.Text)
		if result != nil && len(result.Paragraphs) > 0 {
			results = append(results, *result)
			flat = append(flat, annotate.Flatten(p.Name, result.Paragraphs)...)

			if e.store != nil {
				if _, serr := e.store.SaveResult(ctx, p.Name, hash, result.Paragraphs,
					annotate.Flatten(p.Name, result.Paragraphs)); serr != nil {
					slog.Warn("extract: persisting result failed", "policy", p.Name, "error", serr)
				}
			}
		}
		if err != nil {
			return results, flat, err
		}
	}
	return results, flat, nil
}

// Run loads the input artifact at path (policy table or single
// document), processes every policy, and writes both JSON outputs.
// Partial results are written even when processing was interrupted.
func (e *Engine) Run(ctx context.Context, path string) error {
	policies, err := loadInput(path)
	if err != nil {
		return err
	}
	if len(policies) == 0 {
		return ErrNoPolicies
	}
	slog.Info("extract: run starting", "input", path, "policies", len(policies))

	results, flat, perr := e.ProcessPolicies(ctx, policies)

	if err := e.WriteResults(results, flat); err != nil {
		return err
	}
	slog.Info("extract: run complete",
		"policies", len(results), "flat_records", len(flat))
	return perr
}

// WriteResults writes the nested and flattened JSON artifacts to the
// configured output directory.
func (e *Engine) WriteResults(results []PolicyResult, flat []annotate.FlatRecord) error {
	if err := os.MkdirAll(e.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	// Empty runs still produce well-formed arrays, not JSON null.
	if results == nil {
		results = []PolicyResult{}
	}
	if flat == nil {
		flat = []annotate.FlatRecord{}
	}
	if err := writeJSON(filepath.Join(e.cfg.OutDir, nestedResultsFile), results); err != nil {
		return err
	}
	return writeJSON(filepath.Join(e.cfg.OutDir, flatResultsFile), flat)
}

// loadInput reads policies from an xlsx table, or wraps a single text
// or PDF document as one policy named after the file.
func loadInput(path string) ([]parser.Policy, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return parser.LoadTable(path)
	}
	text, err := parser.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []parser.Policy{{Name: name, Text: text}}, nil
}

// writeJSON marshals v as indented, non-ASCII-preserving UTF-8.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// textHash returns the SHA-256 hex digest of a policy text.
func textHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
