package model

// Genre is a named category assignable to a movie.  Genres are created
// and deleted through the admin dashboard; the frontend never edits one
// in place.
//
// Fields:
//  ID   – identifier assigned by the API.
//  Name – display name of the genre.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
