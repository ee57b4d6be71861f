package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/myanycart/anycart-go/internal/model"
)

const (
	mePath                = "/api/me/"
	confirmationEmailPath = "/api/auth/send-confirmation-email/"
)

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*model.Me, error) {
	var out model.Me
	if err := c.DoJSON(ctx, http.MethodGet, mePath, RequestOptions{Auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe patches the current user's profile as a multipart form, the one
// endpoint that is not JSON because of the optional avatar upload.
func (c *Client) UpdateMe(ctx context.Context, req model.UpdateMeRequest) (*model.Me, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if req.FirstName != nil {
		if err := form.WriteField("first_name", *req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := form.WriteField("last_name", *req.LastName); err != nil {
			return nil, err
		}
	}
	switch {
	case req.Avatar != nil:
		part, err := form.CreateFormFile("avatar", req.Avatar.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(req.Avatar.Content); err != nil {
			return nil, err
		}
	case req.RemoveAvatar:
		if err := form.WriteField("avatar", ""); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building profile form: %w", err)
	}

	opts := RequestOptions{
		Auth:        true,
		Body:        buf.Bytes(),
		ContentType: form.FormDataContentType(),
	}

	var out model.Me
	if err := c.DoJSON(ctx, http.MethodPatch, mePath, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendConfirmationEmail asks the backend to (re)send the address
// confirmation email. Returns the backend's human-readable detail line.
func (c *Client) SendConfirmationEmail(ctx context.Context) (string, error) {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := c.DoJSON(ctx, http.MethodPost, confirmationEmailPath, RequestOptions{Auth: true}, &out); err != nil {
		return "", err
	}
	return out.Detail, nil
}
