// Package demo bundles the curated sample documents and question catalog
// used to showcase the assistant without any user-supplied files.
package demo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"docqa/internal/config"
)

// Category names match the keys of the question catalog.
const (
	CategoryHR       = "HR"
	CategoryLegal    = "Legal"
	CategoryCommerce = "Commerce"
)

// Assets locates the demo documents and questions under a base directory.
type Assets struct {
	baseDir string
}

func NewAssets(baseDir string) *Assets {
	if baseDir == "" {
		baseDir = "demo_assets"
	}
	return &Assets{baseDir: baseDir}
}

// files maps each category to its sample document, relative to baseDir.
func (a *Assets) files() map[string]string {
	return map[string]string{
		CategoryHR:       filepath.Join(a.baseDir, "hr", "employee_handbook_demo.txt"),
		CategoryLegal:    filepath.Join(a.baseDir, "legal", "lease_agreement_demo.txt"),
		CategoryCommerce: filepath.Join(a.baseDir, "commerce", "sales_q4_demo.csv"),
	}
}

func (a *Assets) questionsFile() string {
	return filepath.Join(a.baseDir, "demo_questions.json")
}

// FilePaths returns the absolute paths of the demo documents that exist on
// disk. Missing files are logged and skipped rather than failing the demo.
func (a *Assets) FilePaths() []string {
	files := a.files()
	categories := make([]string, 0, len(files))
	for category := range files {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var paths []string
	for _, category := range categories {
		path := files[category]
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("file", path).Msg("demo file not found")
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		paths = append(paths, abs)
	}
	return paths
}

// LoadQuestions reads the question catalog, keyed by category.
func (a *Assets) LoadQuestions() (map[string][]string, error) {
	data, err := os.ReadFile(a.questionsFile())
	if err != nil {
		return nil, fmt.Errorf("demo questions: %w", err)
	}
	var questions map[string][]string
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("demo questions: %w", err)
	}
	total := 0
	for _, qs := range questions {
		total += len(qs)
	}
	log.Info().Int("questions", total).Msg("loaded demo question catalog")
	return questions, nil
}

// Validate reports the demo assets missing from disk. An empty slice means
// the demo is ready to run.
func (a *Assets) Validate() []string {
	var missing []string
	files := a.files()
	categories := make([]string, 0, len(files))
	for category := range files {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if _, err := os.Stat(files[category]); err != nil {
			missing = append(missing, fmt.Sprintf("%s: %s", category, files[category]))
		}
	}
	if _, err := os.Stat(a.questionsFile()); err != nil {
		missing = append(missing, fmt.Sprintf("questions: %s", a.questionsFile()))
	}
	return missing
}

// ApplyOverrides pins the settings that make demo runs reproducible.
func ApplyOverrides(cfg *config.Config) {
	cfg.Retrieval.TopK = 5
	cfg.Chunking.ChunkSize = 900
	cfg.Chunking.ChunkOverlap = 150
	cfg.Features.Citations = true
}
