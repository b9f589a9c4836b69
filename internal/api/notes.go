package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type NoteAdapter struct {
	client *Client
}

func NewNoteAdapter(client *Client) *NoteAdapter {
	return &NoteAdapter{client: client}
}

func (a *NoteAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Note, error) {
	var notes []entities.Note
	err := a.client.do(ctx, http.MethodGet, "/notes", listQuery(f), nil, &notes)
	return notes, err
}

func (a *NoteAdapter) Get(ctx context.Context, _ string, id string) (*entities.Note, error) {
	var note entities.Note
	if err := a.client.do(ctx, http.MethodGet, "/notes/"+id, nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (a *NoteAdapter) Create(ctx context.Context, _ string, in backend.NoteInput) (*entities.Note, error) {
	var note entities.Note
	if err := a.client.do(ctx, http.MethodPost, "/notes", nil, in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (a *NoteAdapter) Update(ctx context.Context, _ string, id string, p backend.NotePatch) (*entities.Note, error) {
	body := map[string]any{}
	put(body, "content", p.Content)

	var note entities.Note
	if err := a.client.do(ctx, http.MethodPatch, "/notes/"+id, nil, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (a *NoteAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil, nil)
}
