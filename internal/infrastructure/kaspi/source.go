// Package kaspi fetches and parses the seller's order export: a CSV hosted
// at a URL (Kaspi cabinet download or a published Google Sheet).
package kaspi

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/sellerdesk/margin-api/internal/application/importer"
)

var _ importer.SourceFetcher = (*CSVFetcher)(nil)

// CSVFetcher downloads a CSV export over HTTP and returns header-keyed
// rows. Exports straight from the cabinet show up as windows-1251 now and
// then, so the charset from Content-Type is honored; the default is UTF-8.
type CSVFetcher struct {
	client *http.Client
}

// NewCSVFetcher builds the fetcher with the given request timeout.
func NewCSVFetcher(timeout time.Duration) *CSVFetcher {
	return &CSVFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchRows retrieves the export and parses it into one map per data row,
// keyed by the header line. Any failure here (unreachable URL, bad status,
// not parseable as a table) is the single fatal error of an import.
func (f *CSVFetcher) FetchRows(ctx context.Context, url string) ([]map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch export: unexpected status %d", resp.StatusCode)
	}

	body, err := decodeCharset(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return ParseTable(body)
}

// ParseTable reads CSV content into header-keyed rows. Rows shorter than
// the header are padded so optional trailing columns read as empty; the
// header line itself is required.
func ParseTable(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeCharset wraps the body in a decoder for the charset declared in
// Content-Type. Unknown or absent charsets pass through as-is (UTF-8).
func decodeCharset(body io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" {
		return body, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return transform.NewReader(body, enc.NewDecoder()), nil
}
