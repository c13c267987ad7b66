package model

// Location is the closed set of city codes a movie can be shown in.
type Location string

const (
	LocationMSK Location = "MSK"
	LocationSPB Location = "SPB"
	LocationEKB Location = "EKB"
	LocationKZN Location = "KZN"
	LocationNSK Location = "NSK"
)

// Locations lists every valid location in display order.
var Locations = []Location{LocationMSK, LocationSPB, LocationEKB, LocationKZN, LocationNSK}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	for _, v := range Locations {
		if v == l {
			return true
		}
	}
	return false
}

// Movie is a bookable and reviewable catalog item.
//
// Fields:
//  ID          – identifier assigned by the API.
//  Name        – title of the movie.
//  Description – free text synopsis.
//  Price       – ticket price, at least 1.
//  Location    – city code from Locations.
//  ImageURL    – poster link.
//  GenreID     – references Genre.ID.
//  Published   – whether the movie is visible in the public catalog.
type Movie struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Location    Location `json:"location"`
	ImageURL    string   `json:"imageUrl"`
	GenreID     uint64   `json:"genreId"`
	Published   bool     `json:"published"`
}

// MovieInput is the body sent when creating or updating a movie.
type MovieInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Location    Location `json:"location"`
	ImageURL    string   `json:"imageUrl"`
	GenreID     uint64   `json:"genreId"`
	Published   bool     `json:"published"`
}

// MoviePage is one page of the catalog listing.
type MoviePage struct {
	Items      []Movie `json:"items"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}
