// Package results persists screening results as JSON files.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/screening"
)

const (
	filePrefix      = "screening_"
	fileExt         = ".json"
	timestampLayout = "20060102_150405"
)

// ErrNotFound is returned by Get for unknown result files.
var ErrNotFound = errors.New("result not found")

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// Record is the stored form of one screening run.
type Record struct {
	Timestamp time.Time                  `json:"timestamp"`
	JDFile    string                     `json:"jd_file"`
	Result    *screening.ScreeningResult `json:"result"`
}

// Summary describes a stored record without its candidates.
type Summary struct {
	FileName   string    `json:"filename"`
	Timestamp  time.Time `json:"timestamp"`
	JDFile     string    `json:"jd_file"`
	Candidates int       `json:"candidates"`
}

type Store struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, now: time.Now, logger: logger}
}

// Dir returns the directory holding the results.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the result as screening_<YYYYMMDD_HHMMSS>_<jd name>.json and returns the file name.
func (s *Store) Save(result *screening.ScreeningResult, jdFile string) (string, error) {
	if result == nil {
		return "", errors.New("result is required")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	now := s.now()
	record := Record{Timestamp: now, JDFile: jdFile, Result: result}

	base := fmt.Sprintf("%s%s_%s", filePrefix, now.Format(timestampLayout), jdBaseName(jdFile))

	file, name, err := createUnique(s.dir, base)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("write result %s: %w", name, err)
	}

	return name, nil
}

// List returns the stored results, newest first. Unreadable files are skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Summary{}, nil
		}
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		record, err := s.Get(entry.Name())
		if err != nil {
			s.logger.Warn("skipping unreadable result", zap.String("filename", entry.Name()), zap.Error(err))
			continue
		}

		candidates := 0
		if record.Result != nil {
			candidates = len(record.Result.Candidates)
		}
		summaries = append(summaries, Summary{
			FileName:   entry.Name(),
			Timestamp:  record.Timestamp,
			JDFile:     record.JDFile,
			Candidates: candidates,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})

	return summaries, nil
}

// Get reads one stored result by file name.
func (s *Store) Get(name string) (*Record, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid result name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read result %s: %w", name, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", name, err)
	}

	return &record, nil
}

func jdBaseName(jdFile string) string {
	base := filepath.Base(jdFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "_.")
	if base == "" {
		return "job"
	}
	return base
}

// createUnique opens base.json, or base_N.json when runs land in the same second.
func createUnique(dir, base string) (*os.File, string, error) {
	for i := 0; i < 100; i++ {
		name := base + fileExt
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, fileExt)
		}

		file, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create result file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create result file: too many results named %s", base)
}
