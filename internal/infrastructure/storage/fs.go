// Package storage persists finished game records as JSON files,
// bucketed by outcome under the configured directory.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
)

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func outcomeDir(o domain.Outcome) string {
	switch o {
	case domain.Won:
		return "won"
	case domain.Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

func (s *FS) pathFor(id string, o domain.Outcome) string {
	return filepath.Join(s.dir, outcomeDir(o), strings.TrimSpace(id)+".json")
}

// Save writes the record, assigning a fresh UUID when it has no ID.
func (s *FS) Save(ctx context.Context, rec *domain.GameRecord) error {
	if rec == nil {
		return os.ErrInvalid
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	target := s.pathFor(rec.ID, rec.Outcome)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Load finds a record by ID in any outcome bucket.
func (s *FS) Load(ctx context.Context, id string) (*domain.GameRecord, error) {
	candidates := []string{
		filepath.Join(s.dir, "won", id+".json"),
		filepath.Join(s.dir, "lost", id+".json"),
		filepath.Join(s.dir, "ongoing", id+".json"),
	}
	var data []byte
	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if err == nil {
			data = b
			break
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if data == nil {
		return nil, os.ErrNotExist
	}
	var out domain.GameRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List scans recorded games across all outcome buckets.
func (s *FS) List(ctx context.Context) ([]domain.GameMeta, error) {
	var out []domain.GameMeta
	for _, sub := range []string{"won", "lost", "ongoing"} {
		dir := filepath.Join(s.dir, sub)
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var rec domain.GameRecord
			if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
				continue
			}
			out = append(out, domain.GameMeta{
				ID:        rec.ID,
				Outcome:   rec.Outcome,
				Moves:     rec.Moves,
				CreatedAt: rec.CreatedAt,
			})
		}
	}
	return out, nil
}
