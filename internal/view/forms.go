package view

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/msomdec/moviweb/internal/domain"
)

// UserForm holds the submitted add-user fields for redisplay.
type UserForm struct {
	Name string
}

// MovieForm holds movie form fields as strings so invalid input can be
// shown back to the user unchanged.
type MovieForm struct {
	Title    string
	Director string
	Year     string
	Rating   string
	UserID   string
	Lookup   bool
}

// MovieFormFrom fills a form with the stored values of a movie.
func MovieFormFrom(m domain.Movie) MovieForm {
	return MovieForm{
		Title:    m.Title,
		Director: m.Director,
		Year:     formatYear(m.Year),
		Rating:   strconv.FormatFloat(m.Rating, 'f', -1, 64),
		UserID:   strconv.FormatInt(m.UserID, 10),
	}
}

func userMoviesURL(id int64) templ.SafeURL {
	return templ.SafeURL("/user/" + strconv.FormatInt(id, 10) + "/movies")
}

func updateMovieURL(id int64) templ.SafeURL {
	return templ.SafeURL("/update_movie/" + strconv.FormatInt(id, 10))
}

func deleteMovieURL(id int64) templ.SafeURL {
	return templ.SafeURL("/delete_movie/" + strconv.FormatInt(id, 10))
}

func addMovieURL(userID int64) templ.SafeURL {
	return templ.SafeURL("/add_movie?user_id=" + strconv.FormatInt(userID, 10))
}

func movieRowID(id int64) string {
	return "movie-" + strconv.FormatInt(id, 10)
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}
