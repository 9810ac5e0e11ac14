// File: internal/listing/fixtures.go
package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// fixtureListings is the built-in dataset served when the database is
// unreachable. IDs are fixed so detail lookups stay stable across restarts.
var fixtureListings = []ListingResponse{
	{
		ID:               uuid.MustParse("0c53a4a1-94a1-4a6e-8f01-000000000001"),
		Title:            "Industrial Plot - SEZ Zone A",
		Slug:             "industrial-plot-sez-zone-a",
		Category:         CategoryGovernment,
		Purpose:          PurposeLease,
		Location:         "Kharghar Sector 20",
		State:            "Maharashtra",
		District:         "Raigad",
		Area:             5000,
		AreaUnit:         "sq m",
		Price:            75000000,
		Currency:         "INR",
		Verified:         true,
		Authority:        strPtr("CIDCO"),
		Description:      "Prime industrial land located within the CIDCO Special Economic Zone. Ideal for manufacturing or logistics hubs.",
		ImageURL:         "https://images.unsplash.com/photo-1500382017468-9049fee78a6c?auto=format&fit=crop&q=80&w=800",
		Tags:             []string{"Industrial", "SEZ", "Road Touch"},
		Coordinates:      &Coordinates{Lat: 19.0473, Lng: 73.0699},
		SellerName:       "CIDCO Maharashtra",
		SellerEmail:      "contact@cidco.maharashtra.gov.in",
		SellerPhone:      "+91-22-67121000",
		IsSellerVerified: true,
	},
	{
		ID:          uuid.MustParse("0c53a4a1-94a1-4a6e-8f01-000000000002"),
		Title:       "Prime Residential Land",
		Slug:        "prime-residential-land",
		Category:    CategoryPrivate,
		Purpose:     PurposeSale,
		Location:    "Whitefield",
		State:       "Karnataka",
		District:    "Bengaluru",
		Area:        2400,
		AreaUnit:    "sq ft",
		Price:       18000000,
		Currency:    "INR",
		Verified:    true,
		Authority:   strPtr("BBMP"),
		Description: "East-facing residential plot in a premium gated community. Clear titles, BBMP A-Khata ready.",
		ImageURL:    "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?auto=format&fit=crop&q=80&w=800",
		Tags:        []string{"Residential", "Gated Community"},
		Coordinates: &Coordinates{Lat: 12.9698, Lng: 77.75},
		SellerName:  "Aashish Gupta",
		SellerEmail: "aashish.g@example.com",
		SellerPhone: "+91-9876543210",
	},
	{
		ID:          uuid.MustParse("0c53a4a1-94a1-4a6e-8f01-000000000003"),
		Title:       "GIDA Phase IV Industrial Plot",
		Slug:        "gida-phase-iv-industrial-plot",
		Category:    CategoryGovernment,
		Purpose:     PurposeLease,
		Location:    "Sector 13, GIDA",
		State:       "Uttar Pradesh",
		District:    "Gorakhpur",
		Area:        2500,
		AreaUnit:    "sq m",
		Price:       45000000,
		Currency:    "INR",
		Verified:    true,
		Authority:   strPtr("GIDA"),
		Description: "Official GIDA industrial allotment for Phase IV expansion. Ready for factory setup with high-tension power line access.",
		ImageURL:    "https://images.unsplash.com/photo-1541819661191-2090875b0ec8?auto=format&fit=crop&q=80&w=800",
		Tags:        []string{"Industrial", "Manufacturing"},
		Coordinates: &Coordinates{Lat: 26.7126, Lng: 83.2504},
		SellerName:  "GIDA Authority",
		SellerEmail: "allotment@gida.up.gov.in",
		SellerPhone: "+91-551-2200000",
	},
	{
		ID:          uuid.MustParse("0c53a4a1-94a1-4a6e-8f01-000000000004"),
		Title:       "Taramandal Institutional Zone C",
		Slug:        "taramandal-institutional-zone-c",
		Category:    CategoryGovernment,
		Purpose:     PurposeLease,
		Location:    "Lake View Road, Taramandal",
		State:       "Uttar Pradesh",
		District:    "Gorakhpur",
		Area:        1200,
		AreaUnit:    "sq m",
		Price:       85000000,
		Currency:    "INR",
		Verified:    true,
		Authority:   strPtr("GDA"),
		Description: "Premium lake-facing institutional land managed by Gorakhpur Development Authority. Reserved for tourism or education infrastructure.",
		ImageURL:    "https://images.unsplash.com/photo-1582407947304-fd86f028f716?auto=format&fit=crop&q=80&w=800",
		Tags:        []string{"Institutional", "Tourism"},
		Coordinates: &Coordinates{Lat: 26.7412, Lng: 83.3855},
		SellerName:  "GDA Gorakhpur",
		SellerEmail: "vcgda@nic.in",
		SellerPhone: "+91-551-2333333",
	},
	{
		ID:          uuid.MustParse("0c53a4a1-94a1-4a6e-8f01-000000000005"),
		Title:       "Rapti Nagar Civic Center Parcel",
		Slug:        "rapti-nagar-civic-center-parcel",
		Category:    CategoryGovernment,
		Purpose:     PurposeLease,
		Location:    "Rapti Nagar Phase 2",
		State:       "Uttar Pradesh",
		District:    "Gorakhpur",
		Area:        800,
		AreaUnit:    "sq m",
		Price:       35000000,
		Currency:    "INR",
		Verified:    true,
		Authority:   strPtr("GDA"),
		Description: "Proposed site for community utility center. High-density residential catchment area.",
		ImageURL:    "https://images.unsplash.com/photo-1449844908441-8829872d2607?auto=format&fit=crop&q=80&w=800",
		Tags:        []string{"Commercial", "Civic"},
		Coordinates: &Coordinates{Lat: 26.7821, Lng: 83.3951},
		SellerName:  "GDA Gorakhpur",
		SellerEmail: "vcgda@nic.in",
		SellerPhone: "+91-551-2333333",
	},
}

func strPtr(s string) *string { return &s }

// fixtureFallback returns the built-in dataset with query filters applied
// and a neutral demand annotation.
func fixtureFallback(query ListQuery) []ListingResponse {
	now := time.Now()
	out := make([]ListingResponse, 0, len(fixtureListings))
	for _, l := range fixtureListings {
		if query.Category != "" && query.Category != "ALL" && l.Category != query.Category {
			continue
		}
		if query.State != "" && query.State != "ALL" && l.State != query.State {
			continue
		}
		if query.Search != "" {
			s := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(l.Title), s) &&
				!strings.Contains(strings.ToLower(l.Location), s) {
				continue
			}
		}
		l.DemandScore = 45
		l.DemandLabel = DemandLabelModerate
		l.CreatedAt = now
		l.UpdatedAt = now
		out = append(out, l)
	}
	return out
}

// fixtureByID looks up a single fixture listing.
func fixtureByID(id uuid.UUID) (*ListingResponse, bool) {
	for _, l := range fixtureListings {
		if l.ID == id {
			l.DemandScore = 45
			l.DemandLabel = DemandLabelModerate
			now := time.Now()
			l.CreatedAt = now
			l.UpdatedAt = now
			return &l, true
		}
	}
	return nil, false
}
