package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/config"
)

func writeAssets(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	files := map[string]string{
		filepath.Join("hr", "employee_handbook_demo.txt"): "PTO accrues at 10 days per year.",
		filepath.Join("legal", "lease_agreement_demo.txt"): "Monthly rent is $2,500.",
		filepath.Join("commerce", "sales_q4_demo.csv"):     "month,revenue\nOctober,310000\n",
		"demo_questions.json": `{"HR": ["What is the vacation policy?"], "Legal": ["When is rent due?"]}`,
	}
	for rel, content := range files {
		path := filepath.Join(base, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return base
}

func TestFilePathsAllPresent(t *testing.T) {
	assets := NewAssets(writeAssets(t))

	paths := assets.FilePaths()
	require.Len(t, paths, 3)
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
	}
	// Sorted by category: Commerce, HR, Legal.
	assert.Contains(t, paths[0], "sales_q4_demo.csv")
	assert.Contains(t, paths[1], "employee_handbook_demo.txt")
	assert.Contains(t, paths[2], "lease_agreement_demo.txt")
}

func TestFilePathsSkipsMissing(t *testing.T) {
	base := writeAssets(t)
	require.NoError(t, os.Remove(filepath.Join(base, "legal", "lease_agreement_demo.txt")))

	paths := NewAssets(base).FilePaths()
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.NotContains(t, p, "lease_agreement_demo.txt")
	}
}

func TestLoadQuestions(t *testing.T) {
	assets := NewAssets(writeAssets(t))

	questions, err := assets.LoadQuestions()
	require.NoError(t, err)
	assert.Equal(t, []string{"What is the vacation policy?"}, questions["HR"])
	assert.Equal(t, []string{"When is rent due?"}, questions["Legal"])
}

func TestLoadQuestionsMissingFile(t *testing.T) {
	_, err := NewAssets(t.TempDir()).LoadQuestions()
	assert.Error(t, err)
}

func TestValidateReportsMissing(t *testing.T) {
	base := writeAssets(t)
	assert.Empty(t, NewAssets(base).Validate())

	require.NoError(t, os.Remove(filepath.Join(base, "hr", "employee_handbook_demo.txt")))
	require.NoError(t, os.Remove(filepath.Join(base, "demo_questions.json")))

	missing := NewAssets(base).Validate()
	require.Len(t, missing, 2)
	assert.Contains(t, missing[0], "HR: ")
	assert.Contains(t, missing[1], "questions: ")
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Retrieval.TopK = 10
	cfg.Chunking.ChunkSize = 2000
	cfg.Features.Citations = false

	ApplyOverrides(cfg)

	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 900, cfg.Chunking.ChunkSize)
	assert.Equal(t, 150, cfg.Chunking.ChunkOverlap)
	assert.True(t, cfg.Features.Citations)
}
