// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package form

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/model"
)

func TestUnmarshalGuestInput(t *testing.T) {
	testCases := []struct {
		name     string
		input    url.Values
		expected model.GuestInput
	}{
		{
			name: "all fields",
			input: url.Values{
				"name":   {"Familia Rodriguez"},
				"phone":  {"4444222459"},
				"passes": {"4"},
			},
			expected: model.GuestInput{Name: "Familia Rodriguez", Phone: "4444222459", Passes: 4},
		},
		{
			name:     "missing fields stay zero",
			input:    url.Values{"name": {"Roberto"}},
			expected: model.GuestInput{Name: "Roberto"},
		},
		{
			name:     "empty passes ignored",
			input:    url.Values{"name": {"Ana"}, "passes": {""}},
			expected: model.GuestInput{Name: "Ana"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var target model.GuestInput
			if err := Unmarshal(tc.input, &target); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(target, tc.expected) {
				t.Errorf("got %+v, want %+v", target, tc.expected)
			}
		})
	}
}

func TestUnmarshalBool(t *testing.T) {
	var g model.Guest
	if err := Unmarshal(url.Values{"confirmed": {"true"}, "name": {"x"}}, &g); err != nil {
		t.Fatal(err)
	}
	if !g.Confirmed {
		t.Error("confirmed should be true")
	}
}

func TestUnmarshalBadPasses(t *testing.T) {
	var g model.GuestInput
	if err := Unmarshal(url.Values{"passes": {"abc"}}, &g); err == nil {
		t.Error("expected error for non-numeric int field")
	}
}

func TestUnmarshalNonPointer(t *testing.T) {
	var g model.GuestInput
	if err := Unmarshal(url.Values{}, g); err == nil {
		t.Error("expected InvalidUnmarshalError for non-pointer target")
	}
}
