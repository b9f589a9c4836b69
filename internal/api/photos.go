package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type PhotoAdapter struct {
	client *Client
}

func NewPhotoAdapter(client *Client) *PhotoAdapter {
	return &PhotoAdapter{client: client}
}

func (a *PhotoAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Photo, error) {
	var photos []entities.Photo
	err := a.client.do(ctx, http.MethodGet, "/photos", listQuery(f), nil, &photos)
	return photos, err
}

func (a *PhotoAdapter) Get(ctx context.Context, _ string, id string) (*entities.Photo, error) {
	var photo entities.Photo
	if err := a.client.do(ctx, http.MethodGet, "/photos/"+id, nil, nil, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (a *PhotoAdapter) Update(ctx context.Context, _ string, id string, p backend.PhotoPatch) (*entities.Photo, error) {
	body := map[string]any{}
	put(body, "caption", p.Caption)
	p.TakenDate.Apply(body, "taken_date")

	var photo entities.Photo
	if err := a.client.do(ctx, http.MethodPatch, "/photos/"+id, nil, body, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (a *PhotoAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/photos/"+id, nil, nil, nil)
}

// Upload sends the photo as a multipart form. Uploads bypass the
// offline queue entirely: replaying megabytes of stale image data is
// worse than asking the user to retry.
func (a *PhotoAdapter) Upload(ctx context.Context, _ string, in backend.PhotoInput, content io.Reader) (*entities.Photo, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", in.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read photo content: %w", err)
	}
	form.WriteField("tank_id", in.TankID)
	if in.Caption != "" {
		form.WriteField("caption", in.Caption)
	}
	if in.TakenDate != nil {
		form.WriteField("taken_date", in.TakenDate.Format(time.RFC3339))
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	c := a.client
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+"/photos", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var photo entities.Photo
	if err := c.decodeResponse(resp, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (a *PhotoAdapter) Download(ctx context.Context, _ string, id string) (*backend.Blob, error) {
	return a.client.getBlob(ctx, "/photos/"+id+"/content")
}
