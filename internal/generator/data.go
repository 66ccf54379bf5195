package generator

import "Bodi/internal/core/domain"

type cityPool struct {
	name          string
	neighborhoods []string
}

var cities = []cityPool{
	{"Lagos", []string{"Yaba", "Ikeja", "Lekki", "Victoria Island", "Surulere", "Ikoyi", "Maryland", "Gbagada", "Ajah", "Magodo"}},
	{"Abuja", []string{"Wuse 2", "Maitama", "Garki", "Asokoro", "Gwarinpa", "Kubwa", "Jabi", "Utako"}},
	{"Ibadan", []string{"Bodija", "Agodi", "Ring Road", "UI", "Challenge", "Apata"}},
	{"Port Harcourt", []string{"GRA", "Trans Amadi", "Rumuokoro", "D-Line", "Old GRA"}},
	{"Kano", []string{"Nassarawa", "Sabon Gari", "Gwale", "Fagge"}},
	{"Enugu", []string{"GRA", "Independence Layout", "Trans-Ekulu", "New Haven"}},
}

const (
	premiumCityMultiplier         = 1.5
	premiumNeighborhoodMultiplier = 2.5
)

var premiumCities = map[string]bool{"Lagos": true, "Abuja": true}

var premiumNeighborhoods = map[string]bool{
	"Lekki":           true,
	"Victoria Island": true,
	"Maitama":         true,
	"Ikoyi":           true,
}

type priceRange struct{ min, max int }

var basePrices = map[domain.PropertyType]priceRange{
	domain.PropertyStudio:    {200000, 400000},
	domain.PropertyFlat:      {350000, 600000},
	domain.PropertyApartment: {600000, 1200000},
	domain.PropertyBungalow:  {800000, 1500000},
	domain.PropertyDuplex:    {1500000, 4000000},
}

var amenitiesPool = []string{
	"24/7 Power", "Generator", "Parking", "Security", "Water Supply",
	"Gym Access", "Swimming Pool", "Balcony", "Elevator", "CCTV",
	"Cleaning Service", "Internet", "Air Conditioning", "Wardrobe",
	"Kitchen Cabinets", "Tiled Floor", "Pop Ceiling", "Boys Quarters",
}

var titles = map[domain.PropertyType][]string{
	domain.PropertyStudio:    {"Compact Studio", "Modern Studio Apartment", "Cozy Studio Space", "Budget Studio"},
	domain.PropertyApartment: {"Modern Apartment", "Spacious Flat", "Luxury Apartment", "Family Apartment", "Executive Apartment"},
	domain.PropertyDuplex:    {"Executive Duplex", "Luxury Duplex", "Family Duplex", "Contemporary Duplex"},
	domain.PropertyBungalow:  {"Detached Bungalow", "Semi-Detached Bungalow", "Modern Bungalow"},
	domain.PropertyFlat:      {"Self-Contained Flat", "Serviced Flat", "Modern Flat", "Mini Flat"},
}

// descriptions take the type then the neighborhood; templates that ignore
// the neighborhood use an explicit index to skip it.
var descriptions = []string{
	"Well-maintained %[1]s in a secure %[2]s area.",
	"Beautiful %[1]s with modern finishes. Great for families.",
	"Spacious %[1]s in the heart of %[2]s. Close to amenities.",
	"Newly renovated %[1]s. Perfect for young professionals.",
	"Affordable %[1]s in a peaceful neighborhood.",
}

var imageURLs = []string{
	"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
	"https://images.unsplash.com/photo-1600596542815-e32509138b80?w=800",
	"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800",
	"https://images.unsplash.com/photo-1501183638710-841dd1904471?w=800",
	"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800",
	"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800",
	"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800",
	"https://images.unsplash.com/photo-1600566753190-17f0baa2a6c3?w=800",
}
