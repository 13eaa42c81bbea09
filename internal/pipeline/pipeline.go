package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/store"
	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// Config carries everything the import pipeline needs. It is passed in
// explicitly; there is no ambient configuration state.
type Config struct {
	// CSVDir is the directory the scrapers drop bank exports into.
	CSVDir string

	// KeepFiles disables the post-import deletion of processed CSV files.
	KeepFiles bool
}

// Step is a single stage of the import pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state threaded through the pipeline steps.
type State struct {
	Config Config
	Store  store.HistoryStore

	// History is the persisted transaction list, downloaded up front.
	History []*transaction.Transaction

	// Files maps each CSV filename to its raw contents.
	Files map[string]string
	// Filenames preserves directory order, since map iteration does not.
	Filenames []string

	// Batches holds one built batch per parsed file.
	Batches [][]*transaction.Transaction

	// Imported counts transactions appended by the merge.
	Imported int
}

// LoadHistoryStep downloads the persisted history from the blob store.
type LoadHistoryStep struct{}

func (s *LoadHistoryStep) Execute(ctx context.Context, state *State) error {
	history, err := state.Store.Download(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	state.History = history
	return nil
}

// ScanFilesStep reads every .csv file in the configured directory. The
// extension match is case-insensitive; anything else in the directory is
// left alone.
type ScanFilesStep struct{}

func (s *ScanFilesStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(state.Config.CSVDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", state.Config.CSVDir, err)
	}

	state.Files = make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(state.Config.CSVDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		log.Info().Str("filename", entry.Name()).Msg("reading export")
		state.Files[entry.Name()] = string(contents)
		state.Filenames = append(state.Filenames, entry.Name())
	}
	return nil
}

// NormalizeStep converts each file into a batch of transaction records.
// Files in an unsupported format contribute an empty batch, never an error.
type NormalizeStep struct{}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	for _, filename := range state.Filenames {
		rows := Normalize(state.Files[filename], filename, log)
		batch, err := Build(rows)
		if err != nil {
			return fmt.Errorf("building transactions from %s: %w", filename, err)
		}
		state.Batches = append(state.Batches, batch)
	}
	return nil
}

// MergeStep merges every batch into the history.
type MergeStep struct{}

func (s *MergeStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	for _, batch := range state.Batches {
		var imported int
		state.History, imported = Merge(state.History, batch, log)
		state.Imported += imported
	}
	return nil
}

// SaveStep uploads the merged history, but only when the merge actually
// appended something; an unchanged history is never rewritten.
type SaveStep struct{}

func (s *SaveStep) Execute(ctx context.Context, state *State) error {
	if state.Imported == 0 {
		return nil
	}
	log := logger.FromContext(ctx)
	if err := state.Store.Upload(ctx, state.History); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	log.Info().Int("total", len(state.History)).Msg("saved history")
	return nil
}

// CleanupStep deletes the processed CSV files. It runs whether or not
// anything was imported: leftover files would be re-parsed and skipped as
// duplicates next run, but there is no reason to keep them.
type CleanupStep struct{}

func (s *CleanupStep) Execute(ctx context.Context, state *State) error {
	if state.Config.KeepFiles {
		return nil
	}
	log := logger.FromContext(ctx)

	for _, filename := range state.Filenames {
		if err := os.Remove(filepath.Join(state.Config.CSVDir, filename)); err != nil {
			return fmt.Errorf("removing %s: %w", filename, err)
		}
		log.Info().Str("filename", filename).Msg("removed export")
	}
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewImportPipeline creates the standard six-step import pipeline.
func NewImportPipeline() *Pipeline {
	return NewPipeline(
		&LoadHistoryStep{},
		&ScanFilesStep{},
		&NormalizeStep{},
		&MergeStep{},
		&SaveStep{},
		&CleanupStep{},
	)
}

// Import runs the whole import against the given store: download history,
// parse and merge every CSV in cfg.CSVDir, persist if anything was
// appended, then clean up the processed files. It returns the number of
// transactions imported.
func Import(ctx context.Context, cfg Config, historyStore store.HistoryStore) (int, error) {
	state := &State{Config: cfg, Store: historyStore}
	if err := NewImportPipeline().Execute(ctx, state); err != nil {
		return 0, err
	}
	return state.Imported, nil
}
