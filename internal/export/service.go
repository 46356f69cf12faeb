// Package export renders notes to downloadable formats and keeps an export
// history in the document store.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
	"github.com/deardiary/deardiary/backend/go-services/pkg/metrics"
)

// Collection holds one document per export attempt.
const Collection = "export"

const (
	FormatPDF    = "pdf"
	FormatGDoc   = "gdoc"
	FormatNotion = "notion"

	StatusRendered = "rendered"
	StatusArchived = "archived"
	StatusStub     = "stub"
	StatusFailed   = "failed"
)

// PresignExpiry is how long an archived export link stays valid.
const PresignExpiry = 24 * time.Hour

var ErrNoteNotFound = errors.New("note not found")

// ErrUnsupportedFormat is returned for formats without an exporter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var (
	ErrExportNotFound = errors.New("export not found")
	// ErrNotArchived means the export exists but no stored copy can be served.
	ErrNotArchived = errors.New("export has no archived copy")
)

// Indexes backs the per-note history listing.
func Indexes() []store.IndexSpec {
	return []store.IndexSpec{
		{Collection: Collection, Fields: []string{"note_id", "-updated_at"}},
		{Collection: Collection, Fields: []string{"-updated_at", "id"}},
	}
}

// Archive is the object storage used to keep rendered exports.
type Archive interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Record is one entry of the export history.
type Record struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	Format    string    `json:"format"`
	Status    string    `json:"status"`
	ObjectKey string    `json:"object_key,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is a rendered export ready to be sent to the client.
type Result struct {
	Filename string
	Data     []byte
	URL      string // presigned link, empty unless archived
}

type Service struct {
	store   store.Gateway
	notes   *notes.Service
	archive Archive
}

// NewService wires the exporter. archive may be nil, in which case PDFs are
// only streamed back.
func NewService(g store.Gateway, n *notes.Service, archive Archive) *Service {
	return &Service{store: g, notes: n, archive: archive}
}

// ObjectKey returns a fresh archive key for a note export.
func ObjectKey(noteID, format string) string {
	return fmt.Sprintf("exports/%s/%s.%s", noteID, uuid.NewString(), format)
}

// PDF renders the note and, when an archive is configured, uploads a copy.
// A non-empty title replaces the note title on the page.
func (s *Service) PDF(ctx context.Context, noteID, title string) (*Result, error) {
	n, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}
	if strings.TrimSpace(title) == "" {
		title = n.Title
	}
	data, err := RenderPDF(title, n.Content)
	if err != nil {
		metrics.ExportsRendered.WithLabelValues(FormatPDF, StatusFailed).Inc()
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	res := &Result{Filename: filename(title, FormatPDF), Data: data}
	rec := Record{NoteID: n.ID, Format: FormatPDF, Status: StatusRendered, Size: int64(len(data))}
	if s.archive != nil {
		key := ObjectKey(n.ID, FormatPDF)
		if err := s.archive.UploadFile(ctx, key, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
			logger.Warnf("export: archive upload for note %s failed: %v", n.ID, err)
		} else {
			rec.Status, rec.ObjectKey = StatusArchived, key
			if u, err := s.archive.GetPresignedURL(ctx, key, PresignExpiry); err != nil {
				logger.Warnf("export: presign %s failed: %v", key, err)
			} else {
				res.URL = u
			}
		}
	}
	s.record(ctx, rec)
	return res, nil
}

// Stub acknowledges an export to a third-party service that is not wired yet.
func (s *Service) Stub(ctx context.Context, noteID, format string) (string, error) {
	var msg string
	switch format {
	case FormatGDoc:
		msg = "Google Docs export coming soon (demo stub)."
	case FormatNotion:
		msg = "Notion export coming soon (demo stub)."
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	s.record(ctx, Record{NoteID: noteID, Format: format, Status: StatusStub})
	return msg, nil
}

// Download opens the archived copy of a past export. The caller closes the
// returned reader.
func (s *Service) Download(ctx context.Context, exportID string) (*Record, io.ReadCloser, error) {
	d, err := s.store.Get(ctx, Collection, exportID)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, ErrExportNotFound
	}
	rec := recordFromDocument(d)
	if rec.ObjectKey == "" || s.archive == nil {
		return nil, nil, ErrNotArchived
	}
	rc, err := s.archive.DownloadFile(ctx, rec.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download %s: %w", rec.ObjectKey, err)
	}
	return &rec, rc, nil
}

// History lists past exports, newest first. An empty noteID lists all notes.
func (s *Service) History(ctx context.Context, noteID string, limit int) ([]Record, error) {
	opts := store.ListOptions{Limit: limit}
	if noteID != "" {
		opts.Filter = store.Fields{"note_id": noteID}
	}
	docs, err := s.store.List(ctx, Collection, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, recordFromDocument(d))
	}
	return out, nil
}

func recordFromDocument(d *store.Document) Record {
	return Record{
		ID:        d.ID.String(),
		NoteID:    d.String("note_id"),
		Format:    d.String("format"),
		Status:    d.String("status"),
		ObjectKey: d.String("object_key"),
		Size:      sizeOf(d.Fields["size"]),
		CreatedAt: d.CreatedAt,
	}
}

// record writes the history entry. History is best effort and never fails
// the export itself.
func (s *Service) record(ctx context.Context, rec Record) {
	metrics.ExportsRendered.WithLabelValues(rec.Format, rec.Status).Inc()
	fields := store.Fields{
		"note_id": rec.NoteID,
		"format":  rec.Format,
		"status":  rec.Status,
		"size":    rec.Size,
	}
	if rec.ObjectKey != "" {
		fields["object_key"] = rec.ObjectKey
	}
	if _, err := s.store.Create(ctx, Collection, fields); err != nil {
		logger.Warnf("export: history for note %s not recorded: %v", rec.NoteID, err)
	}
}

func sizeOf(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func filename(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "note"
	}
	return name + "." + ext
}
