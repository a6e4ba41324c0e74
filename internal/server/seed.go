package server

import "github.com/desertthunder/myflix/internal/models"

var (
	sciFi = models.Genre{Name: "Science Fiction", Description: "Speculative stories built on imagined science and technology."}
	drama = models.Genre{Name: "Drama", Description: "Character-driven stories about emotional conflict."}
	crime = models.Genre{Name: "Crime", Description: "Stories centered on criminals, detectives and the law."}

	scott = models.Director{
		Name:  "Ridley Scott",
		Bio:   "English filmmaker known for atmospheric science fiction and historical epics.",
		Birth: "1937-11-30T00:00:00.000Z",
	}
	nolan = models.Director{
		Name:  "Christopher Nolan",
		Bio:   "British-American filmmaker known for nonlinear storytelling.",
		Birth: "1970-07-30T00:00:00.000Z",
	}
	kubrick = models.Director{
		Name:  "Stanley Kubrick",
		Bio:   "American filmmaker whose work spans nearly every genre.",
		Birth: "1928-07-26T00:00:00.000Z",
		Death: "1999-03-07T00:00:00.000Z",
	}
	scorsese = models.Director{
		Name:  "Martin Scorsese",
		Bio:   "American filmmaker associated with crime dramas set in New York.",
		Birth: "1942-11-17T00:00:00.000Z",
	}
)

// SeedMovies returns the catalog the dev backend starts with.
func SeedMovies() []models.Movie {
	return []models.Movie{
		{
			ID:          "65a1c0f0e1b2c3d4e5f60001",
			Title:       "Blade Runner",
			Description: "A blade runner must pursue and terminate four replicants who have returned to Earth.",
			Genre:       sciFi,
			Director:    scott,
			ImagePath:   "https://upload.wikimedia.org/wikipedia/en/9/9f/Blade_Runner_%281982_poster%29.png",
			Featured:    true,
			Actors:      []string{"Harrison Ford", "Rutger Hauer", "Sean Young"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60002",
			Title:       "Alien",
			Description: "The crew of a commercial spacecraft encounters a deadly lifeform.",
			Genre:       sciFi,
			Director:    scott,
			Actors:      []string{"Sigourney Weaver", "Tom Skerritt"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60003",
			Title:       "Inception",
			Description: "A thief who steals corporate secrets through dream-sharing is given the inverse task.",
			Genre:       sciFi,
			Director:    nolan,
			Featured:    true,
			Actors:      []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60004",
			Title:       "Memento",
			Description: "A man with short-term memory loss attempts to track down his wife's murderer.",
			Genre:       drama,
			Director:    nolan,
			Actors:      []string{"Guy Pearce", "Carrie-Anne Moss"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60005",
			Title:       "2001: A Space Odyssey",
			Description: "A voyage to Jupiter with the sentient computer HAL after the discovery of a monolith.",
			Genre:       sciFi,
			Director:    kubrick,
			Actors:      []string{"Keir Dullea", "Gary Lockwood"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60006",
			Title:       "Goodfellas",
			Description: "The rise and fall of mob associate Henry Hill.",
			Genre:       crime,
			Director:    scorsese,
			Actors:      []string{"Ray Liotta", "Robert De Niro", "Joe Pesci"},
		},
		{
			ID:          "65a1c0f0e1b2c3d4e5f60007",
			Title:       "Taxi Driver",
			Description: "A mentally unstable veteran works as a nighttime taxi driver in New York City.",
			Genre:       drama,
			Director:    scorsese,
			Actors:      []string{"Robert De Niro", "Jodie Foster"},
		},
	}
}
