package composer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/muzammil1763/admin/internal/modules/catalog"
	"github.com/muzammil1763/admin/internal/modules/media"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrDraftNotFound is returned for unknown draft ids.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrColorImageRequired rejects submission before any network call.
	ErrColorImageRequired = errors.New("color image is required")
	// ErrSubmitInFlight rejects a second submission while one runs.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// Service holds composer drafts and runs the upload-and-compose
// submission pipeline.
type Service struct {
	uploader media.Uploader
	catalog  catalog.Service

	mu     sync.Mutex
	drafts map[string]*draftState
}

type draftState struct {
	draft Draft
	busy  bool
}

func NewService(uploader media.Uploader, cat catalog.Service) *Service {
	return &Service{
		uploader: uploader,
		catalog:  cat,
		drafts:   make(map[string]*draftState),
	}
}

// CreateDraft starts a new draft in its initial empty shape.
func (s *Service) CreateDraft() Draft {
	d := NewDraft()
	s.mu.Lock()
	s.drafts[d.ID.String()] = &draftState{draft: d}
	s.mu.Unlock()
	return d
}

func (s *Service) GetDraft(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return st.draft, nil
}

// ApplyCommand runs one edit through the reducer and stores the result.
func (s *Service) ApplyCommand(id string, cmd Command) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	next, err := Apply(st.draft, cmd)
	if err != nil {
		return Draft{}, err
	}
	st.draft = next
	return next, nil
}

// AttachFile stores a binary in the color slot or a (section, index)
// list slot.
func (s *Service) AttachFile(id, section string, index int, file *FileRef) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	next, err := st.draft.attachFile(section, index, file)
	if err != nil {
		return Draft{}, err
	}
	st.draft = next
	return next, nil
}

// Submit uploads the draft's assets, composes the product record, and
// persists it. On any failure the draft is preserved so the user can
// retry; on success the draft resets to its initial shape with the
// reset token bumped. The busy flag is advisory single-flight: it
// blocks a second Submit for the same draft but nothing downstream
// deduplicates uploads.
func (s *Service) Submit(ctx context.Context, id string) (*catalog.Product, Draft, error) {
	s.mu.Lock()
	st, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return nil, Draft{}, ErrDraftNotFound
	}
	if st.busy {
		s.mu.Unlock()
		return nil, Draft{}, ErrSubmitInFlight
	}
	if st.draft.ColorFile == nil {
		// Validation failure: no network call, draft untouched.
		d := st.draft
		s.mu.Unlock()
		return nil, d, ErrColorImageRequired
	}
	st.busy = true
	d := st.draft
	s.mu.Unlock()

	product, err := s.compose(ctx, d)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.busy = false
	if err != nil {
		return nil, st.draft, err
	}
	st.draft = st.draft.reset()
	return product, st.draft, nil
}

func (s *Service) compose(ctx context.Context, d Draft) (*catalog.Product, error) {
	colorAsset, err := s.uploader.Upload(ctx, d.ColorFile.Name, bytes.NewReader(d.ColorFile.Data))
	if err != nil {
		return nil, fmt.Errorf("color image upload: %w", err)
	}

	// Three independent fan-out-fan-in groups. No group depends on
	// another's result, so running them one after the other is fine.
	fabrics, err := s.uploadList(ctx, d.Fabrics)
	if err != nil {
		return nil, fmt.Errorf("fabric uploads: %w", err)
	}
	frontPockets, err := s.uploadList(ctx, d.FrontPockets)
	if err != nil {
		return nil, fmt.Errorf("front pocket uploads: %w", err)
	}
	backPockets, err := s.uploadList(ctx, d.BackPockets)
	if err != nil {
		return nil, fmt.Errorf("back pocket uploads: %w", err)
	}

	p := &catalog.Product{
		ColorName:          d.ColorName,
		ColorImage:         colorAsset.URL,
		ColorImagePublicID: colorAsset.PublicID,
		ColorImageName:     d.ColorImageName,
		Disc:               d.Disc,
		Price:              d.Price,
		Category:           d.Category,
		Fabrics:            fabrics,
		FrontPockets:       frontPockets,
		BackPockets:        backPockets,
	}
	return s.catalog.CreateProduct(ctx, p)
}

// uploadList uploads every entry with a file in parallel, writing each
// result into its input position so output order matches input order,
// then filters out the empty slots.
func (s *Service) uploadList(ctx context.Context, entries []Entry) ([]catalog.AssetEntry, error) {
	results := make([]*catalog.AssetEntry, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		if e.File == nil {
			continue
		}
		i, e := i, e
		g.Go(func() error {
			asset, err := s.uploader.Upload(ctx, e.File.Name, bytes.NewReader(e.File.Data))
			if err != nil {
				return err
			}
			results[i] = &catalog.AssetEntry{URL: asset.URL, Name: e.Name, PublicID: asset.PublicID}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]catalog.AssetEntry, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
