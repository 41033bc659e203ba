// Package catalog holds the bundled Jodhpur place catalog and its nearby points of interest.
package catalog

import "tourist_places/internal/domain"

const jodhpur = "Jodhpur, India"

func at(lat, lon float64) *domain.Coords { return &domain.Coords{Lat: lat, Lon: lon} }

var places = []domain.Place{
	{
		Name:        "Panchkund Chattriya",
		Location:    jodhpur,
		Description: "A historical site features collection of 46 cenotophs(chhatris).",
		Cost:        0,
		Category:    "Historical",
		Rating:      4.6,
		Image:       "panchkund.jpg",
		Coords:      at(26.3250, 73.0500),
	},
	{
		Name:        "Ghanta Ghar",
		Location:    jodhpur,
		Description: "The clock tower of jodhpur",
		Cost:        25,
		Category:    "Historical",
		Rating:      4.3,
		Image:       "ghanta ghar.jpg",
		Coords:      at(26.2971, 73.0186),
	},
	{
		Name:        "Mehrangarh Fort",
		Location:    jodhpur,
		Description: "the fort of jodhpur .",
		Cost:        200,
		Category:    "Fort",
		Rating:      4.7,
		Image:       "mehrangarh.jpg",
		Coords:      at(26.2981, 73.0182),
	},
	{
		Name:        "Jaswant Thada",
		Location:    jodhpur,
		Description: "taj mahal of marwar.",
		Cost:        30,
		Category:    "Historical",
		Rating:      4.6,
		Image:       "jaswant thada.jpeg",
		Coords:      at(26.2992, 73.0265),
	},
	{
		Name:        "Toorji ka Jhalra",
		Location:    jodhpur,
		Description: "historical stepwell.",
		Cost:        0,
		Category:    "Historical",
		Rating:      4.3,
		Image:       "toorji.jpeg",
		Coords:      at(26.2984, 73.0213),
	},
	{
		Name:        "Surpura Bandh",
		Location:    jodhpur,
		Description: "Water reservoir.",
		Cost:        0,
		Category:    "Dam",
		Rating:      4.6,
		Image:       "surpura.jpeg",
		Coords:      at(26.2850, 73.0450),
	},
	{
		Name:        "Pachetia Hill",
		Location:    jodhpur,
		Description: "Notable elevation in jodhpur, with scenic views and hiking trails.",
		Cost:        0,
		Category:    "Hill",
		Rating:      4.6,
		Image:       "pachetia.jpeg",
		Coords:      at(26.2960, 73.0210),
	},
	{
		Name:        "Mandore Garden",
		Location:    jodhpur,
		Description: "Historic site which served as capital of marwar region.",
		Cost:        50,
		Category:    "Historical",
		Rating:      4.6,
		Image:       "mandore.jpg",
		Coords:      at(26.3510, 73.0551),
	},
	{
		Name:        "Blue City",
		Location:    jodhpur,
		Description: "Old City or Town known for the blue-painted houses.",
		Cost:        0,
		Category:    "Town",
		Rating:      4.6,
		Image:       "blue city.jpg",
		Coords:      at(26.2978, 73.0200),
	},
	{
		Name:        "Umaid Bhawan",
		Location:    jodhpur,
		Description: "Architectural heritage also known as Chittar Palace.",
		Cost:        30,
		Category:    "Historical",
		Rating:      4.6,
		Image:       "umaid bhawan.jpg",
		Coords:      at(26.2673, 73.0310),
	},
	{
		Name:        "Tekri Hill",
		Location:    jodhpur,
		Description: "Gives panaromic view of city and fort with trekking.",
		Cost:        0,
		Category:    "Hill",
		Rating:      4.6,
		Image:       "tekri.jpeg",
		Coords:      at(26.2700, 73.0100),
	},
}

var nearby = []domain.POI{
	{Name: "Khaas Bagh", Type: "Restaurant", Coords: domain.Coords{Lat: 26.2730, Lon: 73.0120}},
	{Name: "Janta Sweet Home", Type: "Restaurant", Coords: domain.Coords{Lat: 26.2965, Lon: 73.0225}},
	{Name: "Clock Tower Market", Type: "Landmark", Coords: domain.Coords{Lat: 26.2971, Lon: 73.0180}},
	{Name: "On The Rocks", Type: "Restaurant", Coords: domain.Coords{Lat: 26.2705, Lon: 73.0250}},
}

// Categories lists the category labels offered by the listing filter.
var Categories = []string{"Historical", "Fort", "Hill", "Dam", "Town"}

// Places returns a fresh copy of the catalog with slugs filled in.
func Places() []domain.Place {
	out := make([]domain.Place, len(places))
	for i, p := range places {
		if p.Coords != nil {
			c := *p.Coords
			p.Coords = &c
		}
		p.Slug = domain.Slugify(p.Name)
		out[i] = p
	}
	return out
}

// NearbyPOIs returns a copy of the bundled points of interest.
func NearbyPOIs() []domain.POI {
	return append([]domain.POI(nil), nearby...)
}
