package notes

import (
	"context"
	"strings"

	"github.com/deardiary/deardiary/backend/go-services/internal/assistant"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
)

// Service implements note and folder operations on top of the document gateway.
// Absent documents are reported as nil results or false flags; gateway errors
// are returned unchanged so callers can branch on store.ErrStoreUnavailable and
// store.ErrInvalidIdentifier.
type Service struct {
	store store.Gateway
}

func NewService(g store.Gateway) *Service {
	return &Service{store: g}
}

func (s *Service) CreateFolder(ctx context.Context, in FolderInput) (string, error) {
	id, err := s.store.Create(ctx, FoldersCollection, in.fields())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Service) ListFolders(ctx context.Context) ([]Folder, error) {
	docs, err := s.store.List(ctx, FoldersCollection, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]Folder, 0, len(docs))
	for _, d := range docs {
		out = append(out, folderFromDocument(d))
	}
	return out, nil
}

func (s *Service) GetFolder(ctx context.Context, id string) (*Folder, error) {
	d, err := s.store.Get(ctx, FoldersCollection, id)
	if err != nil || d == nil {
		return nil, err
	}
	f := folderFromDocument(d)
	return &f, nil
}

func (s *Service) UpdateFolder(ctx context.Context, id string, u FolderUpdate) (bool, error) {
	return s.store.Update(ctx, FoldersCollection, id, u.fields())
}

func (s *Service) DeleteFolder(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, FoldersCollection, id)
}

// CreateNote stores a note and assigns its category from the text.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (string, error) {
	id, err := s.store.Create(ctx, NotesCollection, in.fields(assistant.Categorize(in.Title, in.Content)))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ListNotes returns notes most recently updated first.
func (s *Service) ListNotes(ctx context.Context, q NoteQuery) ([]Note, error) {
	opts := store.ListOptions{}
	if q.FolderID != "" {
		opts.Filter = store.Fields{"folder_id": q.FolderID}
	}
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	if needle == "" {
		opts.Limit = q.Limit
	}
	docs, err := s.store.List(ctx, NotesCollection, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Note, 0, len(docs))
	for _, d := range docs {
		n := noteFromDocument(d)
		if needle != "" && !strings.Contains(strings.ToLower(n.Title+" "+n.Content), needle) {
			continue
		}
		out = append(out, n)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*Note, error) {
	d, err := s.store.Get(ctx, NotesCollection, id)
	if err != nil || d == nil {
		return nil, err
	}
	n := noteFromDocument(d)
	return &n, nil
}

func (s *Service) UpdateNote(ctx context.Context, id string, u NoteUpdate) (bool, error) {
	return s.store.Update(ctx, NotesCollection, id, u.fields())
}

func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, NotesCollection, id)
}

// SearchNotes ranks every note against query with the keyword scorer.
func (s *Service) SearchNotes(ctx context.Context, query string) ([]assistant.Hit, error) {
	docs, err := s.store.List(ctx, NotesCollection, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	corpus := make([]assistant.Searchable, 0, len(docs))
	for _, d := range docs {
		corpus = append(corpus, assistant.Searchable{ID: d.ID.String(), Title: d.String("title"), Content: d.String("content")})
	}
	return assistant.Search(corpus, query), nil
}
