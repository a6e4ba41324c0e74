package models

// ResolveFavorites returns the movies in catalog whose ID appears in ids, in catalog order.
func ResolveFavorites(catalog []Movie, ids []string) []Movie {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	favorites := []Movie{}
	for _, movie := range catalog {
		if _, ok := wanted[movie.ID]; ok {
			favorites = append(favorites, movie)
		}
	}
	return favorites
}
