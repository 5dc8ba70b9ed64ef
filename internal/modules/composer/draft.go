package composer

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/muzammil1763/admin/internal/modules/catalog"
)

// FileRef is a binary attached to a draft slot, held until submission.
type FileRef struct {
	Name string
	Data []byte
}

// Entry is one (file, name) pair in a draft list. File stays nil until
// something is attached; empty slots are dropped at submission, never
// persisted as placeholders.
type Entry struct {
	File *FileRef
	Name string
}

// Draft is the in-memory product form. All mutation goes through Apply
// and the attach helpers, which return a new value and leave the
// receiver untouched.
type Draft struct {
	ID             uuid.UUID
	ColorName      string
	ColorImageName string
	Disc           string
	Price          float64
	Category       string
	ColorFile      *FileRef
	Fabrics        []Entry
	FrontPockets   []Entry
	BackPockets    []Entry

	// ResetToken changes whenever the draft is reset after a successful
	// submission. Clients key their file inputs off it so the controls
	// remount instead of being cleared through direct handle access.
	ResetToken int
}

// Command kinds. Field routing is a typed tagged union dispatched
// through Apply; there is no composite-identifier parsing.
const (
	KindScalarEdit  = "scalarEdit"
	KindListEdit    = "listEdit"
	KindAddEntry    = "addEntry"
	KindRemoveEntry = "removeEntry"
)

// Scalar field names accepted by scalarEdit.
const (
	FieldColorName      = "colorName"
	FieldColorImageName = "colorImageName"
	FieldDisc           = "disc"
	FieldPrice          = "price"
	FieldCategory       = "category"
)

// List names accepted by listEdit, addEntry, and removeEntry.
const (
	ListFabrics      = "fabrics"
	ListFrontPockets = "frontPockets"
	ListBackPockets  = "backPockets"
)

// Command is one edit to a draft.
type Command struct {
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
	List  string `json:"list,omitempty"`
	Index int    `json:"index,omitempty"`
	Slot  string `json:"slot,omitempty"`
	Value string `json:"value,omitempty"`
}

// NewDraft returns the initial empty shape: Male category and one empty
// entry per list.
func NewDraft() Draft {
	return Draft{
		ID:           uuid.New(),
		Category:     catalog.CategoryMale,
		Fabrics:      []Entry{{}},
		FrontPockets: []Entry{{}},
		BackPockets:  []Entry{{}},
	}
}

// reset returns the initial shape with the reset token bumped.
func (d Draft) reset() Draft {
	next := NewDraft()
	next.ID = d.ID
	next.ResetToken = d.ResetToken + 1
	return next
}

// clone copies the draft including its list backing arrays, so edits to
// the copy never perturb the original.
func (d Draft) clone() Draft {
	next := d
	next.Fabrics = append([]Entry(nil), d.Fabrics...)
	next.FrontPockets = append([]Entry(nil), d.FrontPockets...)
	next.BackPockets = append([]Entry(nil), d.BackPockets...)
	return next
}

// Apply is the single reducer: it validates the command and returns a
// new draft. On any error the returned draft equals the input.
func Apply(d Draft, cmd Command) (Draft, error) {
	switch cmd.Kind {
	case KindScalarEdit:
		return applyScalar(d, cmd)
	case KindAddEntry:
		return applyAdd(d, cmd)
	case KindRemoveEntry:
		return applyRemove(d, cmd)
	case KindListEdit:
		return applyListEdit(d, cmd)
	default:
		return d, fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
}

func applyScalar(d Draft, cmd Command) (Draft, error) {
	next := d.clone()
	switch cmd.Field {
	case FieldColorName:
		next.ColorName = cmd.Value
	case FieldColorImageName:
		next.ColorImageName = cmd.Value
	case FieldDisc:
		next.Disc = cmd.Value
	case FieldPrice:
		price, err := strconv.ParseFloat(cmd.Value, 64)
		if err != nil {
			return d, fmt.Errorf("price must be a number")
		}
		if price < 0 {
			return d, fmt.Errorf("price must not be negative")
		}
		next.Price = price
	case FieldCategory:
		if cmd.Value != catalog.CategoryMale && cmd.Value != catalog.CategoryFemale {
			return d, fmt.Errorf("category must be %s or %s", catalog.CategoryMale, catalog.CategoryFemale)
		}
		next.Category = cmd.Value
	default:
		return d, fmt.Errorf("unknown scalar field %q", cmd.Field)
	}
	return next, nil
}

func applyAdd(d Draft, cmd Command) (Draft, error) {
	next := d.clone()
	list, err := next.list(cmd.List)
	if err != nil {
		return d, err
	}
	*list = append(*list, Entry{})
	return next, nil
}

func applyRemove(d Draft, cmd Command) (Draft, error) {
	next := d.clone()
	list, err := next.list(cmd.List)
	if err != nil {
		return d, err
	}
	if cmd.Index < 0 || cmd.Index >= len(*list) {
		return d, fmt.Errorf("%s has no entry %d", cmd.List, cmd.Index)
	}
	if len(*list) == 1 {
		return d, fmt.Errorf("%s must keep at least one entry", cmd.List)
	}
	*list = append((*list)[:cmd.Index], (*list)[cmd.Index+1:]...)
	return next, nil
}

func applyListEdit(d Draft, cmd Command) (Draft, error) {
	next := d.clone()
	list, err := next.list(cmd.List)
	if err != nil {
		return d, err
	}
	if cmd.Index < 0 || cmd.Index >= len(*list) {
		return d, fmt.Errorf("%s has no entry %d", cmd.List, cmd.Index)
	}
	if cmd.Slot != "name" {
		return d, fmt.Errorf("unknown slot %q (files are attached, not edited)", cmd.Slot)
	}
	entry := (*list)[cmd.Index]
	entry.Name = cmd.Value
	(*list)[cmd.Index] = entry
	return next, nil
}

func (d *Draft) list(name string) (*[]Entry, error) {
	switch name {
	case ListFabrics:
		return &d.Fabrics, nil
	case ListFrontPockets:
		return &d.FrontPockets, nil
	case ListBackPockets:
		return &d.BackPockets, nil
	default:
		return nil, fmt.Errorf("unknown list %q", name)
	}
}

// attachFile returns a copy of the draft with the file placed in the
// color slot or a (list, index) slot.
func (d Draft) attachFile(section string, index int, file *FileRef) (Draft, error) {
	next := d.clone()
	if section == "colorImage" {
		next.ColorFile = file
		return next, nil
	}
	list, err := next.list(section)
	if err != nil {
		return d, err
	}
	if index < 0 || index >= len(*list) {
		return d, fmt.Errorf("%s has no entry %d", section, index)
	}
	entry := (*list)[index]
	entry.File = file
	(*list)[index] = entry
	return next, nil
}
