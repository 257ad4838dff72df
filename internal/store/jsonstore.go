package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// JSONStore writes tool payloads under Root, one file per operation and argument set.
type JSONStore struct {
	Root string // e.g. "data/nba"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// DocumentPath names the file for one call, e.g.
// "get_player_game_log/player_id=2544_season=2023-24_season_type=Playoffs.json".
func DocumentPath(op string, args map[string]string) string {
	if len(args) == 0 {
		return filepath.Join(op, "_.json")
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+sanitize(args[k]))
	}
	return filepath.Join(op, strings.Join(parts, "_")+".json")
}

func sanitize(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '-'
		}
		return r
	}, v)
}

// WriteRaw stores body at rel and returns the full path written.
func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) (string, error) {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if pretty {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			body = buf.Bytes()
		}
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}
