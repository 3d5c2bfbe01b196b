package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// FileStorage keeps one JSON document per campaign under dataDir.
// Saves go through a temp file and rename so a crash mid-write leaves the
// previous document intact.
type FileStorage struct {
	dataDir string
	logger  *slog.Logger
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file-backed campaign store rooted at dataDir.
func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &FileStorage{dataDir: dataDir, logger: logger}
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if err := os.MkdirAll(f.campaignsDir(), 0o755); err != nil {
		return &StoreUnavailableError{Op: "ping", Err: err}
	}
	return nil
}

func (f *FileStorage) Close() error { return nil }

func (f *FileStorage) campaignsDir() string {
	return filepath.Join(f.dataDir, "campaigns")
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.campaignsDir(), id.String()+".json")
}

func (f *FileStorage) SaveCampaign(ctx context.Context, id uuid.UUID, cs *state.CampaignState) error {
	cs.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	if err := os.MkdirAll(f.campaignsDir(), 0o755); err != nil {
		return &StoreUnavailableError{Op: "save", Err: err}
	}

	// Temp-write-and-swap keeps partial writes unobservable.
	tmp, err := os.CreateTemp(f.campaignsDir(), id.String()+".*.tmp")
	if err != nil {
		return &StoreUnavailableError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StoreUnavailableError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StoreUnavailableError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, f.path(id)); err != nil {
		os.Remove(tmpName)
		return &StoreUnavailableError{Op: "save", Err: err}
	}
	return nil
}

// DecodeDocument handles campaign files that predate the engine or crossed
// an editor with opinions about encodings. UTF-8 first (with or without a
// BOM), then Windows-1252, then Latin-1 as the backstop that decodes
// anything. A stage wins only if its output is well-formed UTF-8 AND valid
// JSON; the x/text UTF-8 decoder silently substitutes U+FFFD, so the first
// two stages check validity themselves instead of trusting decoder errors.
func DecodeDocument(raw []byte) ([]byte, error) {
	if body, ok := stripBOM(raw); ok {
		raw = body
	}
	if utf8.Valid(raw) {
		trimmed := []byte(strings.TrimSpace(string(raw)))
		if json.Valid(trimmed) {
			return trimmed, nil
		}
	}

	for _, dec := range []*encoding.Decoder{
		charmap.Windows1252.NewDecoder(),
		charmap.ISO8859_1.NewDecoder(),
	} {
		decoded, err := dec.Bytes(raw)
		if err != nil {
			continue
		}
		trimmed := []byte(strings.TrimSpace(string(decoded)))
		if json.Valid(trimmed) {
			return trimmed, nil
		}
	}
	return nil, fmt.Errorf("no decoding yields valid JSON")
}

func stripBOM(raw []byte) ([]byte, bool) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(raw) >= 3 && raw[0] == bom[0] && raw[1] == bom[1] && raw[2] == bom[2] {
		return raw[3:], true
	}
	return raw, false
}

func (f *FileStorage) LoadCampaign(ctx context.Context, id uuid.UUID) (*state.CampaignState, error) {
	raw, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StoreUnavailableError{Op: "load", Err: err}
	}

	decoded, err := DecodeDocument(raw)
	if err != nil {
		return nil, &DocumentCorruptError{Key: f.path(id), Err: err}
	}

	var cs state.CampaignState
	if err := json.Unmarshal(decoded, &cs); err != nil {
		return nil, &DocumentCorruptError{Key: f.path(id), Err: err}
	}
	return &cs, nil
}

func (f *FileStorage) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	if err := os.Remove(f.path(id)); err != nil && !os.IsNotExist(err) {
		return &StoreUnavailableError{Op: "delete", Err: err}
	}
	return nil
}

func (f *FileStorage) ListCampaigns(ctx context.Context) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(f.campaignsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StoreUnavailableError{Op: "list", Err: err}
	}

	var ids []uuid.UUID
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			if f.logger != nil {
				f.logger.Warn("Skipping non-campaign file", "name", entry.Name())
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
