// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package form

import (
	"reflect"
	"testing"
	"time"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func sampleData() *model.WeddingData {
	d := model.DefaultWeddingData()
	d.GalleryImages = []string{"one.jpg", "two.jpg", "three.jpg"}
	d.GiftsInfo.GiftRegistries = []model.GiftRegistry{
		{Name: "Liverpool", URL: "https://mesa.example/123"},
	}
	d.GiftsInfo.Wishlist = []string{"vajilla", "batidora"}
	return d
}

func TestEditorNeverMutatesSource(t *testing.T) {
	src := sampleData()
	snapshot := src.Clone()

	e := NewEditor(src)
	e.SetField("bride_first_name", "María")
	e.SetNestedField("ceremony_location", "address", "otra dirección")
	e.SetDeepNestedField("gifts_info", "bank_info", "bank", "BBVA")
	e.SetDate(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	e.ChangeGalleryImage(0, "changed.jpg")
	e.AddGalleryImage()
	e.RemoveGalleryImage(1)
	e.ChangeDressCodeItem(FormalWear, 0, "etiqueta rigurosa")
	e.AddDressCodeItem(AvoidColors)
	e.RemoveDressCodeItem(AvoidColors, 0)
	e.ChangeGiftRegistry(0, "name", "Amazon")
	e.AddGiftRegistry()
	e.ChangeWishlistItem(1, "cafetera")
	e.RemoveWishlistItem(0)
	e.SetColor("primary", "#000000")

	if !reflect.DeepEqual(src, snapshot) {
		t.Fatalf("source mutated by editor operations:\nbefore %+v\nafter  %+v", snapshot, src)
	}
}

func TestEditorSetFields(t *testing.T) {
	e := NewEditor(sampleData())
	e.SetField("groom_last_name", "Pérez")
	e.SetNestedField("reception_location", "name", "Salón Jardín")
	e.SetDeepNestedField("gifts_info", "bank_info", "account_number", "0123456789")

	got := e.Data()
	if got.GroomLastName != "Pérez" {
		t.Errorf("GroomLastName = %q", got.GroomLastName)
	}
	if got.ReceptionLocation.Name != "Salón Jardín" {
		t.Errorf("ReceptionLocation.Name = %q", got.ReceptionLocation.Name)
	}
	if got.GiftsInfo.BankInfo.AccountNumber != "0123456789" {
		t.Errorf("AccountNumber = %q", got.GiftsInfo.BankInfo.AccountNumber)
	}
}

func TestEditorSetDateIgnoresZero(t *testing.T) {
	src := sampleData()
	e := NewEditor(src)
	e.SetDate(time.Time{})
	if !e.Data().WeddingDate.Equal(src.WeddingDate) {
		t.Error("zero date should be a no-op")
	}

	want := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	e.SetDate(want)
	if !e.Data().WeddingDate.Equal(want) {
		t.Errorf("WeddingDate = %v, want %v", e.Data().WeddingDate, want)
	}
}

func TestEditorRemovePreservesOrder(t *testing.T) {
	for i := 0; i < 3; i++ {
		e := NewEditor(sampleData())
		e.RemoveGalleryImage(i)
		got := e.Data().GalleryImages
		if len(got) != 2 {
			t.Fatalf("remove(%d): len = %d, want 2", i, len(got))
		}
		want := []string{"one.jpg", "two.jpg", "three.jpg"}
		want = append(want[:i], want[i+1:]...)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("remove(%d): got %v, want %v", i, got, want)
		}
	}
}

func TestEditorAddThenRemoveRoundTrip(t *testing.T) {
	e := NewEditor(sampleData())
	before := e.Data().GiftsInfo.Wishlist
	e.AddWishlistItem()
	e.RemoveWishlistItem(len(before))
	if got := e.Data().GiftsInfo.Wishlist; !reflect.DeepEqual(got, before) {
		t.Errorf("round trip changed the list: got %v, want %v", got, before)
	}
}

func TestEditorOutOfRangeIgnored(t *testing.T) {
	e := NewEditor(sampleData())
	before := e.Data()
	e.ChangeGalleryImage(-1, "x")
	e.ChangeGalleryImage(99, "x")
	e.RemoveGalleryImage(99)
	e.ChangeGiftRegistry(5, "name", "x")
	e.RemoveWishlistItem(-2)
	if !reflect.DeepEqual(e.Data(), before) {
		t.Error("out-of-range operations should be ignored")
	}
}

func TestEditorApplyPreset(t *testing.T) {
	e := NewEditor(sampleData())
	preset := model.ThemeColors{
		Primary:    "#14213D",
		Secondary:  "#FCA311",
		Accent:     "#E5E5E5",
		Background: "#FFFFFF",
	}
	e.ApplyPreset(preset)
	if got := e.Data().ThemeColors; got != preset {
		t.Errorf("ThemeColors = %+v, want %+v", got, preset)
	}
}

func TestEditorReset(t *testing.T) {
	e := NewEditor(sampleData())
	e.SetField("bride_first_name", "changed")

	fresh := sampleData()
	e.Reset(fresh)
	if !reflect.DeepEqual(e.Data(), fresh) {
		t.Error("reset should restore the given data")
	}

	fresh.BrideFirstName = "mutated after reset"
	if e.Data().BrideFirstName == "mutated after reset" {
		t.Error("reset must deep-copy its input")
	}
}
