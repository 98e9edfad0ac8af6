// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Package form holds the server-side draft of the invitation editor. Every
// mutation works on a private deep copy and rebuilds the touched collection,
// so data handed in or out of the editor is never aliased.
package form

import (
	"time"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

// DressCodeList selects one of the two dress-code note lists.
type DressCodeList string

const (
	FormalWear  DressCodeList = "formal_wear"
	AvoidColors DressCodeList = "avoid_colors"
)

type Editor struct {
	data *model.WeddingData
}

// NewEditor deep-copies data; the caller's value stays untouched no matter
// what the editor does afterwards.
func NewEditor(data *model.WeddingData) *Editor {
	return &Editor{data: data.Clone()}
}

// Reset re-initializes the draft from fresh data, same copy guarantee as
// NewEditor.
func (e *Editor) Reset(data *model.WeddingData) {
	e.data = data.Clone()
}

// Data returns a deep copy of the current draft.
func (e *Editor) Data() *model.WeddingData {
	return e.data.Clone()
}

// SetField replaces a top-level scalar field. Field names follow the admin
// form input names. Unknown fields are ignored.
func (e *Editor) SetField(field, value string) {
	switch field {
	case "bride_first_name":
		e.data.BrideFirstName = value
	case "bride_last_name":
		e.data.BrideLastName = value
	case "groom_first_name":
		e.data.GroomFirstName = value
	case "groom_last_name":
		e.data.GroomLastName = value
	case "background_image_url":
		e.data.BackgroundImageURL = value
	case "mobile_background_image_url":
		e.data.MobileBackgroundImageURL = value
	}
}

// SetNestedField replaces one property inside a top-level object field,
// e.g. ("ceremony_location", "address", ...).
func (e *Editor) SetNestedField(field, nested, value string) {
	switch field {
	case "ceremony_location":
		setLocationField(&e.data.CeremonyLocation, nested, value)
	case "reception_location":
		setLocationField(&e.data.ReceptionLocation, nested, value)
	}
}

// SetDeepNestedField is the three-level path used for the bank details
// nested inside the gifts section.
func (e *Editor) SetDeepNestedField(parent, child, grandchild, value string) {
	if parent != "gifts_info" || child != "bank_info" {
		return
	}
	switch grandchild {
	case "bank":
		e.data.GiftsInfo.BankInfo.Bank = value
	case "account_holder":
		e.data.GiftsInfo.BankInfo.AccountHolder = value
	case "account_number":
		e.data.GiftsInfo.BankInfo.AccountNumber = value
	}
}

// SetDate replaces the wedding date. A zero time is ignored so a cancelled
// date picker cannot clear the field.
func (e *Editor) SetDate(t time.Time) {
	if t.IsZero() {
		return
	}
	e.data.WeddingDate = t
}

func (e *Editor) ChangeGalleryImage(i int, url string) {
	e.data.GalleryImages = changeAt(e.data.GalleryImages, i, url)
}

func (e *Editor) AddGalleryImage() {
	e.data.GalleryImages = appendCopy(e.data.GalleryImages, "")
}

func (e *Editor) RemoveGalleryImage(i int) {
	e.data.GalleryImages = removeAt(e.data.GalleryImages, i)
}

func (e *Editor) ChangeDressCodeItem(list DressCodeList, i int, value string) {
	switch list {
	case FormalWear:
		e.data.DressCode.FormalWear = changeAt(e.data.DressCode.FormalWear, i, value)
	case AvoidColors:
		e.data.DressCode.AvoidColors = changeAt(e.data.DressCode.AvoidColors, i, value)
	}
}

func (e *Editor) AddDressCodeItem(list DressCodeList) {
	switch list {
	case FormalWear:
		e.data.DressCode.FormalWear = appendCopy(e.data.DressCode.FormalWear, "")
	case AvoidColors:
		e.data.DressCode.AvoidColors = appendCopy(e.data.DressCode.AvoidColors, "")
	}
}

func (e *Editor) RemoveDressCodeItem(list DressCodeList, i int) {
	switch list {
	case FormalWear:
		e.data.DressCode.FormalWear = removeAt(e.data.DressCode.FormalWear, i)
	case AvoidColors:
		e.data.DressCode.AvoidColors = removeAt(e.data.DressCode.AvoidColors, i)
	}
}

// ChangeGiftRegistry updates one property ("name" or "url") of the registry
// at index i.
func (e *Editor) ChangeGiftRegistry(i int, field, value string) {
	regs := e.data.GiftsInfo.GiftRegistries
	if i < 0 || i >= len(regs) {
		return
	}
	entry := regs[i]
	switch field {
	case "name":
		entry.Name = value
	case "url":
		entry.URL = value
	default:
		return
	}
	e.data.GiftsInfo.GiftRegistries = changeAt(regs, i, entry)
}

func (e *Editor) AddGiftRegistry() {
	e.data.GiftsInfo.GiftRegistries = appendCopy(e.data.GiftsInfo.GiftRegistries, model.GiftRegistry{})
}

func (e *Editor) RemoveGiftRegistry(i int) {
	e.data.GiftsInfo.GiftRegistries = removeAt(e.data.GiftsInfo.GiftRegistries, i)
}

func (e *Editor) ChangeWishlistItem(i int, value string) {
	e.data.GiftsInfo.Wishlist = changeAt(e.data.GiftsInfo.Wishlist, i, value)
}

func (e *Editor) AddWishlistItem() {
	e.data.GiftsInfo.Wishlist = appendCopy(e.data.GiftsInfo.Wishlist, "")
}

func (e *Editor) RemoveWishlistItem(i int) {
	e.data.GiftsInfo.Wishlist = removeAt(e.data.GiftsInfo.Wishlist, i)
}

// SetColor updates one of the four theme colors ("primary", "secondary",
// "accent", "background").
func (e *Editor) SetColor(key, hex string) {
	switch key {
	case "primary":
		e.data.ThemeColors.Primary = hex
	case "secondary":
		e.data.ThemeColors.Secondary = hex
	case "accent":
		e.data.ThemeColors.Accent = hex
	case "background":
		e.data.ThemeColors.Background = hex
	}
}

// ApplyPreset replaces the whole palette with a named preset bundle.
func (e *Editor) ApplyPreset(p model.ThemeColors) {
	e.SetColor("primary", p.Primary)
	e.SetColor("secondary", p.Secondary)
	e.SetColor("accent", p.Accent)
	e.SetColor("background", p.Background)
}

func setLocationField(loc *model.Location, field, value string) {
	switch field {
	case "name":
		loc.Name = value
	case "address":
		loc.Address = value
	case "time":
		loc.Time = value
	case "map_url":
		loc.MapURL = value
	case "image_url":
		loc.ImageURL = value
	case "map_iframe":
		loc.MapIframe = value
	}
}

// Out-of-range indexes leave the list untouched instead of panicking, the
// editor must survive a stale fragment submitting against a shrunk list.

func changeAt[T any](list []T, i int, v T) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	out[i] = v
	return out
}

func appendCopy[T any](list []T, v T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func removeAt[T any](list []T, i int) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
