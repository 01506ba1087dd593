package works

import (
	"context"
	"errors"
	"strings"

	"kh-portfolio/internal/validation"
)

var (
	ErrNotFound          = errors.New("work not found")
	ErrThumbnailRequired = errors.New("thumbnail required")
)

// Form is the edit boundary in front of the store. It is the only place
// that insists on a thumbnail.
type Form struct {
	store *Store
	val   *validation.Validator
}

func NewForm(store *Store, val *validation.Validator) (*Form, error) {
	if err := val.RegisterEnum("category", Categories...); err != nil {
		return nil, err
	}
	return &Form{store: store, val: val}, nil
}

func (f *Form) Create(ctx context.Context, req UpsertRequest) (Work, error) {
	req = normalize(req)
	if err := f.check(req); err != nil {
		return Work{}, err
	}
	return f.store.Add(ctx, req.draft()), nil
}

func (f *Form) Edit(ctx context.Context, id string, req UpsertRequest) (Work, error) {
	id = strings.TrimSpace(id)
	req = normalize(req)
	if err := f.check(req); err != nil {
		return Work{}, err
	}
	item := req.draft().withID(id)
	if !f.store.Update(ctx, item) {
		return Work{}, ErrNotFound
	}
	return item, nil
}

func (f *Form) check(req UpsertRequest) error {
	if req.Thumbnail == "" {
		return ErrThumbnailRequired
	}
	return f.val.Struct(req)
}

func normalize(req UpsertRequest) UpsertRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Client = strings.TrimSpace(req.Client)
	req.Duration = strings.TrimSpace(req.Duration)
	req.Thumbnail = strings.TrimSpace(req.Thumbnail)
	req.ProjectURL = strings.TrimSpace(req.ProjectURL)
	req.Description = strings.TrimSpace(req.Description)
	req.Credits.Developer = strings.TrimSpace(req.Credits.Developer)
	req.Credits.Designer = strings.TrimSpace(req.Credits.Designer)
	req.Credits.Photographer = strings.TrimSpace(req.Credits.Photographer)
	req.Credits.Agency = strings.TrimSpace(req.Credits.Agency)
	return req
}

func (req UpsertRequest) draft() Draft {
	return Draft{
		Title:       req.Title,
		Category:    req.Category,
		Year:        req.Year,
		Client:      req.Client,
		Duration:    req.Duration,
		Thumbnail:   req.Thumbnail,
		ProjectURL:  req.ProjectURL,
		Description: req.Description,
		Credits: Credits{
			Developer:    req.Credits.Developer,
			Designer:     req.Credits.Designer,
			Photographer: req.Credits.Photographer,
			Agency:       req.Credits.Agency,
		},
	}
}
