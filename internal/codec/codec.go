package codec

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"leadscout-engine/internal/domain"
)

// Supported persistence formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Codec reads and writes lead collections on disk. All file access goes
// through a sidecar flock so concurrent pollers and CLI invocations
// never interleave partial writes.
type Codec struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Codec {
	if log == nil {
		log = zap.NewNop()
	}
	return &Codec{log: log}
}

// Save writes leads to path in the given format. CSV refuses an empty
// collection because there is no record to derive the header from; JSON
// writes an empty array.
func (c *Codec) Save(leads []domain.Lead, path, format string) error {
	switch normalizeFormat(format) {
	case FormatJSON:
		return c.saveJSON(leads, path)
	case FormatCSV:
		return c.saveCSV(leads, path)
	default:
		return fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidArgument, format)
	}
}

// Load reads leads from path. On any failure it returns an empty
// non-nil slice next to the typed error, so callers always hold a
// usable value.
func (c *Codec) Load(path, format string) ([]domain.Lead, error) {
	var (
		leads []domain.Lead
		err   error
	)
	switch normalizeFormat(format) {
	case FormatJSON:
		leads, err = c.loadJSON(path)
	case FormatCSV:
		leads, err = c.loadCSV(path)
	default:
		err = fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidArgument, format)
	}
	if err != nil {
		return []domain.Lead{}, err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, nil
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// writeLocked writes data to path under an exclusive sidecar lock.
func (c *Codec) writeLocked(path string, data []byte) error {
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %v", domain.ErrWrite, path, err)
	}
	defer fl.Unlock()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, path, err)
	}
	return nil
}

// readLocked reads path under a shared sidecar lock. A missing file
// maps to ErrNotFound.
func (c *Codec) readLocked(path string) ([]byte, error) {
	fl := flock.New(path + ".lock")
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("%w: lock %s: %v", domain.ErrParse, path, err)
	}
	defer fl.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}
	return data, nil
}
