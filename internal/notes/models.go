package notes

import (
	"time"

	"github.com/deardiary/deardiary/backend/go-services/internal/store"
)

// Collections used by the notes service.
const (
	NotesCollection   = "note"
	FoldersCollection = "folder"
)

const (
	defaultHeaderStyle = "soft"
	defaultFolderIcon  = "📁"
)

// Folder groups notes. Folders do not own their notes; deleting a folder
// leaves notes that reference it untouched.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FolderInput struct {
	Name  string  `json:"name" binding:"required,min=1,max=64"`
	Color *string `json:"color"` // hex or tailwind color token
	Icon  string  `json:"icon"`
}

type FolderUpdate struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=64"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// Note is a diary entry.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FolderID    *string   `json:"folder_id"`
	Tags        []string  `json:"tags"`
	HeaderStyle string    `json:"header_style"`
	Tone        *string   `json:"tone"`
	Category    string    `json:"category"`
	IsPinned    bool      `json:"is_pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoteInput struct {
	Title       string   `json:"title" binding:"required,min=1,max=120"`
	Content     string   `json:"content"`
	FolderID    *string  `json:"folder_id"`
	Tags        []string `json:"tags"`
	HeaderStyle string   `json:"header_style" binding:"omitempty,oneof=soft minimal kawaii serif"`
	Tone        *string  `json:"tone"`
}

// NoteUpdate carries a partial update; nil fields are left unchanged.
type NoteUpdate struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=120"`
	Content     *string  `json:"content"`
	FolderID    *string  `json:"folder_id"`
	Tags        []string `json:"tags"`
	HeaderStyle *string  `json:"header_style" binding:"omitempty,oneof=soft minimal kawaii serif"`
	Tone        *string  `json:"tone"`
	IsPinned    *bool    `json:"is_pinned"`
}

// NoteQuery narrows ListNotes. Q is a case-insensitive substring match over
// title and content.
type NoteQuery struct {
	FolderID string
	Q        string
	Limit    int
}

func (in FolderInput) fields() store.Fields {
	icon := in.Icon
	if icon == "" {
		icon = defaultFolderIcon
	}
	return store.Fields{"name": in.Name, "color": in.Color, "icon": icon}
}

func (u FolderUpdate) fields() store.Fields {
	f := store.Fields{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Color != nil {
		f["color"] = *u.Color
	}
	if u.Icon != nil {
		f["icon"] = *u.Icon
	}
	return f
}

func (in NoteInput) fields(category string) store.Fields {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	style := in.HeaderStyle
	if style == "" {
		style = defaultHeaderStyle
	}
	return store.Fields{
		"title":        in.Title,
		"content":      in.Content,
		"folder_id":    in.FolderID,
		"tags":         tags,
		"header_style": style,
		"tone":         in.Tone,
		"category":     category,
		"is_pinned":    false,
	}
}

func (u NoteUpdate) fields() store.Fields {
	f := store.Fields{}
	if u.Title != nil {
		f["title"] = *u.Title
	}
	if u.Content != nil {
		f["content"] = *u.Content
	}
	if u.FolderID != nil {
		f["folder_id"] = *u.FolderID
	}
	if u.Tags != nil {
		f["tags"] = u.Tags
	}
	if u.HeaderStyle != nil {
		f["header_style"] = *u.HeaderStyle
	}
	if u.Tone != nil {
		f["tone"] = *u.Tone
	}
	if u.IsPinned != nil {
		f["is_pinned"] = *u.IsPinned
	}
	return f
}

func optString(d *store.Document, key string) *string {
	s, ok := d.Fields[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func folderFromDocument(d *store.Document) Folder {
	icon := d.String("icon")
	if icon == "" {
		icon = defaultFolderIcon
	}
	return Folder{
		ID:        d.ID.String(),
		Name:      d.String("name"),
		Color:     optString(d, "color"),
		Icon:      icon,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func noteFromDocument(d *store.Document) Note {
	style := d.String("header_style")
	if style == "" {
		style = defaultHeaderStyle
	}
	return Note{
		ID:          d.ID.String(),
		Title:       d.String("title"),
		Content:     d.String("content"),
		FolderID:    optString(d, "folder_id"),
		Tags:        d.Strings("tags"),
		HeaderStyle: style,
		Tone:        optString(d, "tone"),
		Category:    d.String("category"),
		IsPinned:    d.Bool("is_pinned"),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Indexes backs the list ordering and the folder filter.
func Indexes() []store.IndexSpec {
	return []store.IndexSpec{
		{Collection: NotesCollection, Fields: []string{"-updated_at", "id"}},
		{Collection: NotesCollection, Fields: []string{"folder_id", "-updated_at"}},
		{Collection: FoldersCollection, Fields: []string{"-updated_at", "id"}},
	}
}
