package store

import (
	"testing"

	"github.com/google/uuid"

	"desaportal/internal/models"
)

func strptr(s string) *string { return &s }
func intptr(n int64) *int64   { return &n }

func TestProductStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	name := "Keripik Singkong " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProducts(t, db, name) })

	created, err := s.Create(&models.Product{
		Name:        name,
		Description: strptr("Keripik renyah buatan warga"),
		Price:       intptr(15000),
		Category:    strptr("makanan"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	created.Price = intptr(17500)
	updated, err := s.Update(created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil || *updated.Price != 17500 {
		t.Error("price update not persisted")
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, p := range list {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("created product missing from list")
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, _ := s.FindByID(created.ID)
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestProductStoreUpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	updated, err := s.Update(&models.Product{ID: uuid.New(), Name: "Hilang"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Error("expected nil for unknown product id")
	}
}

func TestCulinaryStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewCulinaryStore(db)

	name := "Sate Ayam " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCulinary(t, db, name) })

	created, err := s.Create(&models.Culinary{
		Name:     name,
		Price:    intptr(20000),
		Seller:   strptr("Warung Bu Sri"),
		Location: strptr("Dusun Krajan"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected culinary item")
	}
	if found.Seller == nil || *found.Seller != "Warung Bu Sri" {
		t.Error("seller not persisted")
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestBookletStoreCRUDAndCategoryFilter(t *testing.T) {
	db := testDB(t)
	s := NewBookletStore(db)

	title := "Buku Wisata " + uuid.NewString()[:8]
	t.Cleanup(func() { cleanBooklets(t, db, title) })

	created, err := s.Create(&models.Booklet{
		Title:    title,
		Category: strptr("wisata"),
		PDFURL:   "https://cdn.desa.local/booklets/wisata.pdf",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := s.List("")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	wisata, err := s.List("wisata")
	if err != nil {
		t.Fatalf("List wisata: %v", err)
	}

	inList := func(items []models.Booklet) bool {
		for _, b := range items {
			if b.ID == created.ID {
				return true
			}
		}
		return false
	}
	if !inList(all) {
		t.Error("booklet missing from unfiltered list")
	}
	if !inList(wisata) {
		t.Error("booklet missing from category-filtered list")
	}

	other, err := s.List("layanan")
	if err != nil {
		t.Fatalf("List layanan: %v", err)
	}
	if inList(other) {
		t.Error("booklet leaked into another category")
	}
}
