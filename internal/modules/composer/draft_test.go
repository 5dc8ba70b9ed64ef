package composer

import (
	"testing"

	"github.com/muzammil1763/admin/internal/modules/catalog"
)

func TestNewDraftInitialShape(t *testing.T) {
	d := NewDraft()

	if d.Category != catalog.CategoryMale {
		t.Errorf("Expected default category %s, got %s", catalog.CategoryMale, d.Category)
	}
	for name, list := range map[string][]Entry{
		"fabrics":      d.Fabrics,
		"frontPockets": d.FrontPockets,
		"backPockets":  d.BackPockets,
	} {
		if len(list) != 1 {
			t.Errorf("Expected %s to start with one entry, got %d", name, len(list))
		}
		if list[0].File != nil || list[0].Name != "" {
			t.Errorf("Expected %s to start empty", name)
		}
	}
	if d.ColorFile != nil {
		t.Error("Expected no color file on a fresh draft")
	}
}

func TestAddEntryGrowsOnlyThatList(t *testing.T) {
	d := NewDraft()
	d.ColorName = "Indigo"

	next, err := Apply(d, Command{Kind: KindAddEntry, List: ListFabrics})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(next.Fabrics) != 2 {
		t.Errorf("Expected 2 fabrics, got %d", len(next.Fabrics))
	}
	if len(next.FrontPockets) != 1 || len(next.BackPockets) != 1 {
		t.Error("Expected other lists untouched")
	}
	if next.ColorName != "Indigo" {
		t.Error("Expected scalar fields untouched")
	}
}

func TestAddEntryNeverMutatesExistingEntries(t *testing.T) {
	d := NewDraft()
	d, _ = Apply(d, Command{Kind: KindListEdit, List: ListFabrics, Index: 0, Slot: "name", Value: "Denim"})

	next, _ := Apply(d, Command{Kind: KindAddEntry, List: ListFabrics})
	next, _ = Apply(next, Command{Kind: KindListEdit, List: ListFabrics, Index: 1, Slot: "name", Value: "Corduroy"})

	if d.Fabrics[0].Name != "Denim" {
		t.Errorf("Expected original entry preserved, got %q", d.Fabrics[0].Name)
	}
	if len(d.Fabrics) != 1 {
		t.Errorf("Expected original draft to keep 1 fabric, got %d", len(d.Fabrics))
	}
	if next.Fabrics[0].Name != "Denim" || next.Fabrics[1].Name != "Corduroy" {
		t.Error("Expected both entries in the new draft")
	}
}

func TestScalarEditLeavesListsAlone(t *testing.T) {
	d := NewDraft()
	d, _ = Apply(d, Command{Kind: KindAddEntry, List: ListBackPockets})
	d, _ = Apply(d, Command{Kind: KindListEdit, List: ListBackPockets, Index: 1, Slot: "name", Value: "Flap"})

	next, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldDisc, Value: "Slim fit"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next.Disc != "Slim fit" {
		t.Errorf("Expected disc set, got %q", next.Disc)
	}
	if len(next.BackPockets) != 2 || next.BackPockets[1].Name != "Flap" {
		t.Error("Expected back pockets untouched by a scalar edit")
	}
}

func TestScalarEditPrice(t *testing.T) {
	d := NewDraft()

	next, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldPrice, Value: "49.99"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next.Price != 49.99 {
		t.Errorf("Expected price 49.99, got %v", next.Price)
	}

	if _, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldPrice, Value: "-5"}); err == nil {
		t.Error("Expected error for negative price")
	}
	if _, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldPrice, Value: "cheap"}); err == nil {
		t.Error("Expected error for non-numeric price")
	}
}

func TestScalarEditCategory(t *testing.T) {
	d := NewDraft()

	next, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldCategory, Value: catalog.CategoryFemale})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next.Category != catalog.CategoryFemale {
		t.Errorf("Expected category %s, got %s", catalog.CategoryFemale, next.Category)
	}
	if _, err := Apply(d, Command{Kind: KindScalarEdit, Field: FieldCategory, Value: "Kids"}); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestRemoveEntry(t *testing.T) {
	d := NewDraft()
	d, _ = Apply(d, Command{Kind: KindAddEntry, List: ListFabrics})
	d, _ = Apply(d, Command{Kind: KindListEdit, List: ListFabrics, Index: 0, Slot: "name", Value: "Denim"})
	d, _ = Apply(d, Command{Kind: KindListEdit, List: ListFabrics, Index: 1, Slot: "name", Value: "Corduroy"})

	next, err := Apply(d, Command{Kind: KindRemoveEntry, List: ListFabrics, Index: 0})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(next.Fabrics) != 1 || next.Fabrics[0].Name != "Corduroy" {
		t.Errorf("Expected only Corduroy left, got %+v", next.Fabrics)
	}

	// A list never shrinks below one entry.
	if _, err := Apply(next, Command{Kind: KindRemoveEntry, List: ListFabrics, Index: 0}); err == nil {
		t.Error("Expected error removing the last entry")
	}
}

func TestApplyRejectsBadCommands(t *testing.T) {
	d := NewDraft()
	d.ColorName = "Indigo"

	cases := []Command{
		{Kind: "mystery"},
		{Kind: KindScalarEdit, Field: "sku", Value: "x"},
		{Kind: KindAddEntry, List: "sleeves"},
		{Kind: KindListEdit, List: ListFabrics, Index: 7, Slot: "name", Value: "x"},
		{Kind: KindListEdit, List: ListFabrics, Index: 0, Slot: "file", Value: "x"},
		{Kind: KindRemoveEntry, List: ListFabrics, Index: -1},
	}
	for _, cmd := range cases {
		next, err := Apply(d, cmd)
		if err == nil {
			t.Errorf("Expected error for command %+v", cmd)
		}
		if next.ColorName != d.ColorName || len(next.Fabrics) != len(d.Fabrics) {
			t.Errorf("Expected draft unchanged after rejected command %+v", cmd)
		}
	}
}
