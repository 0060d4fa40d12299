package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ManifestFile is the name of the metadata file in every run directory.
const ManifestFile = "manifest.json"

// ErrInvalidRunID is returned for run IDs that are not UUIDs.
var ErrInvalidRunID = errors.New("store: invalid run id")

// Store keeps one directory per render run under a base directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Artifact is one file written by a run.
type Artifact struct {
	Kind   string `json:"kind"`
	Format string `json:"format"`
	// Path is relative to the run directory.
	Path   string `json:"path"`
	Panels int    `json:"panels"`
	Traces int    `json:"traces"`
	Bytes  int64  `json:"bytes"`
}

// RunMetadata describes a run and what it produced.
type RunMetadata struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Seed      uint64     `json:"seed"`
	Theme     string     `json:"theme,omitempty"`
	Preset    string     `json:"preset,omitempty"`
	Artifacts []Artifact `json:"artifacts"`
}

// Create allocates a new run directory and returns metadata for it.
func (s *Store) Create(seed uint64) (*RunMetadata, error) {
	id := uuid.New().String()
	if err := os.MkdirAll(s.Dir(id), 0755); err != nil {
		return nil, fmt.Errorf("store: create run: %w", err)
	}
	return &RunMetadata{ID: id, Timestamp: time.Now().UTC(), Seed: seed, Artifacts: []Artifact{}}, nil
}

// Dir is the directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Path resolves an artifact name inside a run directory.
func (s *Store) Path(runID, name string) string {
	return filepath.Join(s.Dir(runID), name)
}

// Record stats the artifact file and appends it to meta.
func (s *Store) Record(meta *RunMetadata, a Artifact) error {
	info, err := os.Stat(s.Path(meta.ID, a.Path))
	if err != nil {
		return fmt.Errorf("store: artifact %s: %w", a.Path, err)
	}
	a.Bytes = info.Size()
	meta.Artifacts = append(meta.Artifacts, a)
	return nil
}

// Save writes the run manifest.
func (s *Store) Save(meta *RunMetadata) error {
	if _, err := uuid.Parse(meta.ID); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidRunID, meta.ID)
	}
	if err := os.MkdirAll(s.Dir(meta.ID), 0755); err != nil {
		return err
	}
	f, err := os.Create(s.Path(meta.ID, ManifestFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteManifest(f, meta)
}

// WriteManifest encodes meta as indented JSON.
func WriteManifest(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns every readable run, oldest first. Directories without a valid
// manifest are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidRunID, runID)
	}
	data, err := os.ReadFile(s.Path(runID, ManifestFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: manifest %s: %w", runID, err)
	}
	return &meta, nil
}
