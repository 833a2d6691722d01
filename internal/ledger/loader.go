package ledger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"salonmate/internal/model"
)

// Loader fetches the ledger blob from a local path or an HTTP URL
// and parses it. The source is externally maintained; the loader
// reads it fresh on every call.
type Loader struct {
	source     string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewLoader creates a loader for the given source. An empty source
// means no ledger is configured and every load yields an empty
// list.
func NewLoader(source string, logger *zerolog.Logger) *Loader {
	return &Loader{
		source:     source,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Load fetches and parses the ledger. Fetch failures are returned
// for the caller to degrade on; parse never fails.
func (l *Loader) Load(ctx context.Context) ([]model.CustomerRecord, error) {
	if l.source == "" {
		return nil, nil
	}
	raw, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}
	records := Parse(raw)
	l.logger.Debug().Int("records", len(records)).Msg("ledger loaded")
	return records, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, http.NoBody)
		if err != nil {
			return nil, err
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("http %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(l.source)
}
