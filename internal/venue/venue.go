// Package venue resolves exam venue names to coordinates and builds the
// Google Maps links shown next to a venue.
package venue

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkordes/exam-tracker/internal/domain"
)

// Resolver looks venues up by normalized name.
// The zero value is not usable; construct with NewResolver.
type Resolver struct {
	venues []domain.Venue
	byKey  map[string]domain.Venue
}

// NewResolver builds a Resolver over venues. When two venues normalize to
// the same key the first one wins.
func NewResolver(venues []domain.Venue) *Resolver {
	r := &Resolver{
		venues: venues,
		byKey:  make(map[string]domain.Venue, len(venues)),
	}
	for _, v := range venues {
		key := Normalize(v.Name)
		if _, dup := r.byKey[key]; !dup {
			r.byKey[key] = v
		}
	}
	return r
}

// Default returns a Resolver over the built-in venue table.
func Default() *Resolver {
	return NewResolver(Table())
}

// Lookup returns the venue whose normalized name equals the normalized query.
func (r *Resolver) Lookup(name string) (domain.Venue, bool) {
	key := Normalize(name)
	if key == "" {
		return domain.Venue{}, false
	}
	v, ok := r.byKey[key]
	return v, ok
}

// All returns the venues in table order.
func (r *Resolver) All() []domain.Venue {
	out := make([]domain.Venue, len(r.venues))
	copy(out, r.venues)
	return out
}

// Normalize strips all whitespace, hyphens and commas from name and lowercases
// the rest, so "Bohol Island State University - Candijay Campus" and
// "BoholIslandStateUniversity-CandijayCampus" compare equal.
func Normalize(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == ',' {
			return -1
		}
		return r
	}, name)
	return cases.Lower(language.Und).String(stripped)
}

// SearchURL returns a Google Maps search link centred on c.
func SearchURL(c domain.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s", latLng(c))
}

// DirectionsURL returns a Google Maps directions link from the visitor's
// current location to c.
func DirectionsURL(c domain.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%s", latLng(c))
}

// EmbedURL returns the Maps Embed API URL for a place. When placeName is empty
// the coordinates are used as the query.
func EmbedURL(apiKey string, c domain.Coordinates, placeName string) string {
	q := latLng(c)
	if placeName != "" {
		q = placeName
	}
	v := url.Values{}
	v.Set("key", apiKey)
	v.Set("q", q)
	v.Set("center", latLng(c))
	v.Set("zoom", "15")
	return "https://www.google.com/maps/embed/v1/place?" + v.Encode()
}

func latLng(c domain.Coordinates) string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}
