// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package model

import (
	"reflect"
	"testing"
)

func TestWeddingDataClone(t *testing.T) {
	orig := DefaultWeddingData()
	orig.GalleryImages = []string{"a.jpg", "b.jpg"}
	orig.GiftsInfo.GiftRegistries = []GiftRegistry{{Name: "Liverpool", URL: "https://example.com"}}
	orig.GiftsInfo.Wishlist = []string{"vajilla"}

	clone := orig.Clone()
	if !reflect.DeepEqual(orig, clone) {
		t.Fatalf("clone differs from original:\n%+v\n%+v", orig, clone)
	}

	clone.GalleryImages[0] = "changed.jpg"
	clone.DressCode.FormalWear[0] = "changed"
	clone.GiftsInfo.GiftRegistries[0].Name = "changed"
	clone.GiftsInfo.Wishlist[0] = "changed"
	clone.CeremonyLocation.Name = "changed"

	if orig.GalleryImages[0] != "a.jpg" {
		t.Error("gallery images share backing storage")
	}
	if orig.DressCode.FormalWear[0] == "changed" {
		t.Error("dress code shares backing storage")
	}
	if orig.GiftsInfo.GiftRegistries[0].Name == "changed" {
		t.Error("gift registries share backing storage")
	}
	if orig.GiftsInfo.Wishlist[0] == "changed" {
		t.Error("wishlist shares backing storage")
	}
	if orig.CeremonyLocation.Name == "changed" {
		t.Error("ceremony location aliased")
	}
}

func TestWeddingDataCloneNilSlices(t *testing.T) {
	w := &WeddingData{}
	c := w.Clone()
	if c.GalleryImages != nil || c.GiftsInfo.GiftRegistries != nil {
		t.Error("nil slices should stay nil")
	}
}
