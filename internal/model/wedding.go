// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package model

import "time"

// Location describes one of the two wedding venues. Time is a free-text
// label ("16:00 hrs"), it is never parsed.
type Location struct {
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
	Time     string `json:"time" form:"time"`
	MapURL   string `json:"mapUrl" form:"map_url"`
	ImageURL string `json:"imageUrl,omitempty" form:"image_url"`
	// MapIframe is owner-authored embed markup. It is rendered verbatim on
	// the invitation page and must never be populated from guest input.
	MapIframe string `json:"mapIframe,omitempty" form:"map_iframe"`
}

type GiftRegistry struct {
	Name string `json:"name" form:"name"`
	URL  string `json:"url" form:"url"`
}

type BankInfo struct {
	Bank          string `json:"bank" form:"bank"`
	AccountHolder string `json:"accountHolder" form:"account_holder"`
	AccountNumber string `json:"accountNumber" form:"account_number"`
}

type GiftsInfo struct {
	GiftRegistries []GiftRegistry `json:"giftRegistries"`
	BankInfo       BankInfo       `json:"bankInfo"`
	Wishlist       []string       `json:"wishlist"`
}

type DressCode struct {
	FormalWear  []string `json:"formalWear"`
	AvoidColors []string `json:"avoidColors"`
}

// ThemeColors is the four-color palette the couple picks for their page.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// WeddingData is the authored content of one invitation.
type WeddingData struct {
	BrideFirstName           string      `json:"brideFirstName" form:"bride_first_name"`
	BrideLastName            string      `json:"brideLastName" form:"bride_last_name"`
	GroomFirstName           string      `json:"groomFirstName" form:"groom_first_name"`
	GroomLastName            string      `json:"groomLastName" form:"groom_last_name"`
	WeddingDate              time.Time   `json:"weddingDate"`
	BackgroundImageURL       string      `json:"backgroundImageUrl" form:"background_image_url"`
	MobileBackgroundImageURL string      `json:"mobileBackgroundImageUrl,omitempty" form:"mobile_background_image_url"`
	CeremonyLocation         Location    `json:"ceremonyLocation"`
	ReceptionLocation        Location    `json:"receptionLocation"`
	GalleryImages            []string    `json:"galleryImages"`
	DressCode                DressCode   `json:"dressCode"`
	GiftsInfo                GiftsInfo   `json:"giftsInfo"`
	ThemeColors              ThemeColors `json:"themeColors"`
}

// Clone returns a deep copy. Every nested slice and struct is copied so the
// receiver and the result never share backing storage.
func (w *WeddingData) Clone() *WeddingData {
	c := *w
	c.GalleryImages = cloneStrings(w.GalleryImages)
	c.DressCode.FormalWear = cloneStrings(w.DressCode.FormalWear)
	c.DressCode.AvoidColors = cloneStrings(w.DressCode.AvoidColors)
	c.GiftsInfo.Wishlist = cloneStrings(w.GiftsInfo.Wishlist)
	if w.GiftsInfo.GiftRegistries != nil {
		c.GiftsInfo.GiftRegistries = make([]GiftRegistry, len(w.GiftsInfo.GiftRegistries))
		copy(c.GiftsInfo.GiftRegistries, w.GiftsInfo.GiftRegistries)
	}
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// DefaultWeddingData is the sample invitation shown on the landing page and
// used to seed a brand-new draft.
func DefaultWeddingData() *WeddingData {
	return &WeddingData{
		BrideFirstName:     "Elena",
		BrideLastName:      "García",
		GroomFirstName:     "Juan",
		GroomLastName:      "López",
		WeddingDate:        time.Date(2025, time.May, 15, 16, 0, 0, 0, time.UTC),
		BackgroundImageURL: "/static/img/hero.svg",
		CeremonyLocation: Location{
			Name:    "Catedral de Santa María",
			Address: "Calle Principal 123, Ciudad",
			Time:    "16:00 hrs",
			MapURL:  "https://maps.google.com",
		},
		ReceptionLocation: Location{
			Name:    "Hacienda Los Laureles",
			Address: "Carretera Norte km 15, Ciudad",
			Time:    "18:00 hrs",
			MapURL:  "https://maps.google.com",
		},
		GalleryImages: []string{},
		DressCode: DressCode{
			FormalWear:  []string{"Vestido largo", "Traje oscuro"},
			AvoidColors: []string{"Blanco", "Marfil"},
		},
		GiftsInfo: GiftsInfo{
			GiftRegistries: []GiftRegistry{},
			Wishlist:       []string{},
		},
		ThemeColors: ThemeColors{
			Primary:    "#3E000C",
			Secondary:  "#D4B2A7",
			Accent:     "#B3B792",
			Background: "#E5E0D8",
		},
	}
}
