package composer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the draft endpoints. Drafts are server-held; clients
// edit them through typed commands and multipart file attachments, then
// submit.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/composer/drafts", func(r chi.Router) {
		r.Post("/", h.createDraft)
		r.Get("/{id}", h.getDraft)
		r.Post("/{id}/commands", h.applyCommand)
		r.Put("/{id}/files", h.attachFile)
		r.Post("/{id}/submit", h.submit)
	})
}

// fileView reports an attached file without its bytes.
type fileView struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type entryView struct {
	File *fileView `json:"file"`
	Name string    `json:"name"`
}

type draftView struct {
	ID             string      `json:"id"`
	ColorName      string      `json:"colorName"`
	ColorImageName string      `json:"colorImageName"`
	Disc           string      `json:"disc"`
	Price          float64     `json:"price"`
	Category       string      `json:"category"`
	ColorFile      *fileView   `json:"colorFile"`
	Fabrics        []entryView `json:"fabrics"`
	FrontPockets   []entryView `json:"frontPockets"`
	BackPockets    []entryView `json:"backPockets"`
	ResetToken     int         `json:"resetToken"`
}

func viewOf(d Draft) draftView {
	return draftView{
		ID:             d.ID.String(),
		ColorName:      d.ColorName,
		ColorImageName: d.ColorImageName,
		Disc:           d.Disc,
		Price:          d.Price,
		Category:       d.Category,
		ColorFile:      fileViewOf(d.ColorFile),
		Fabrics:        entryViews(d.Fabrics),
		FrontPockets:   entryViews(d.FrontPockets),
		BackPockets:    entryViews(d.BackPockets),
		ResetToken:     d.ResetToken,
	}
}

func fileViewOf(f *FileRef) *fileView {
	if f == nil {
		return nil
	}
	return &fileView{Name: f.Name, Size: len(f.Data)}
}

func entryViews(entries []Entry) []entryView {
	out := make([]entryView, len(entries))
	for i, e := range entries {
		out[i] = entryView{File: fileViewOf(e.File), Name: e.Name}
	}
	return out
}

func (h *Handler) createDraft(w http.ResponseWriter, r *http.Request) {
	d := h.service.CreateDraft()
	respond(w, http.StatusCreated, viewOf(d))
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDraft(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, viewOf(d))
}

func (h *Handler) applyCommand(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := h.service.ApplyCommand(chi.URLParam(r, "id"), cmd)
	if err != nil {
		http.Error(w, err.Error(), editStatus(err))
		return
	}
	respond(w, http.StatusOK, viewOf(d))
}

func (h *Handler) attachFile(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	index, _ := strconv.Atoi(r.URL.Query().Get("index"))

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.service.AttachFile(chi.URLParam(r, "id"), section, index, &FileRef{Name: header.Filename, Data: data})
	if err != nil {
		http.Error(w, err.Error(), editStatus(err))
		return
	}
	respond(w, http.StatusOK, viewOf(d))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	product, d, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"product": product,
		"draft":   viewOf(d),
	})
}

// editStatus maps draft-edit failures: unknown draft vs bad command.
func editStatus(err error) int {
	if errors.Is(err, ErrDraftNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// statusFor maps submission failures. Anything past validation is an
// upstream upload or persistence failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrColorImageRequired):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
