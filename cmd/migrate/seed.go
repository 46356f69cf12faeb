package main

import (
	"context"
	"fmt"

	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
)

func strPtr(s string) *string { return &s }

// seedDemo writes one folder per theme with a couple of notes each and
// returns how many documents were created.
func seedDemo(ctx context.Context, svc *notes.Service) (int, error) {
	demo := []struct {
		folder notes.FolderInput
		notes  []notes.NoteInput
	}{
		{
			folder: notes.FolderInput{Name: "School", Color: strPtr("#f9c6d0"), Icon: "📚"},
			notes: []notes.NoteInput{
				{Title: "Exam plan", Content: "Chapter 3 flashcards\nPast paper on Friday", Tags: []string{"exam"}, HeaderStyle: "minimal"},
				{Title: "Lecture notes: cells", Content: "Mitochondria are the powerhouse."},
			},
		},
		{
			folder: notes.FolderInput{Name: "Me", Icon: "🌸"},
			notes: []notes.NoteInput{
				{Title: "Sunday", Content: "I feel rested today.", HeaderStyle: "kawaii", Tone: strPtr("cute")},
				{Title: "Todo", Content: "laundry\ncall grandma", Tags: []string{"home"}},
			},
		},
	}

	count := 0
	for _, d := range demo {
		folderID, err := svc.CreateFolder(ctx, d.folder)
		if err != nil {
			return count, fmt.Errorf("folder %q: %w", d.folder.Name, err)
		}
		count++
		for _, in := range d.notes {
			in.FolderID = &folderID
			if _, err := svc.CreateNote(ctx, in); err != nil {
				return count, fmt.Errorf("note %q: %w", in.Title, err)
			}
			count++
		}
	}
	return count, nil
}
