// package formatter renders movies and profiles for the terminal and exports favorites to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatJSON     = "json"
)

// FavoritesExport is a user's resolved favorite movies.
type FavoritesExport struct {
	Username string         `json:"username"`
	Movies   []models.Movie `json:"movies"`
}

// NewFavoritesExport builds an export from a loaded profile view.
func NewFavoritesExport(view *models.ProfileView) *FavoritesExport {
	return &FavoritesExport{Username: view.Username, Movies: view.FavoriteMovies}
}

// Export renders export in the named format.
func Export(export *FavoritesExport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown, "md":
		return ExportToMarkdown(export, nil)
	case FormatText, "txt", "":
		return ExportToText(export)
	case FormatJSON:
		return shared.MarshalJSON(export, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToCSV converts favorites to CSV with columns: ID, Title, Genre, Director, Featured, ImagePath
func ExportToCSV(export *FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Director", "Featured", "ImagePath"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{
			movie.ID,
			movie.Title,
			movie.Genre.Name,
			movie.Director.Name,
			strconv.FormatBool(movie.Featured),
			movie.ImagePath,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts favorites to Markdown. posters maps movie IDs to local image files to embed.
func ExportToMarkdown(export *FavoritesExport, posters map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s's favorite movies\n\n", export.Username))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(export.Movies)))

	for _, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("## %s\n\n", movie.Title))
		if poster := posters[movie.ID]; poster != "" {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", movie.Title, poster))
		}
		buf.WriteString(fmt.Sprintf("- **Genre**: %s\n", movie.Genre.Name))
		buf.WriteString(fmt.Sprintf("- **Director**: %s\n", movie.Director.Name))
		if movie.Featured {
			buf.WriteString("- **Featured**\n")
		}
		if movie.Description != "" {
			buf.WriteString(fmt.Sprintf("\n%s\n", movie.Description))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts favorites to plain text
func ExportToText(export *FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites of %s\n", export.Username))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s, dir. %s)\n", i+1, movie.Title, movie.Genre.Name, movie.Director.Name))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteExport writes export to path in the named format.
//
// Defaults to {username}_favorites.{ext} as the filename.
func WriteExport(export *FavoritesExport, format, path string) (string, error) {
	data, err := Export(export, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("%s_favorites.%s", export.Username, extension(format))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   []string
}

// WriteMarkdownExport exports favorites to {dir}/README.md, defaulting dir to {username}_favorites.
//
// With withPosters set each movie's ImagePath is downloaded to {dir}/{id}.jpg; failed downloads are skipped.
func WriteMarkdownExport(ctx context.Context, export *FavoritesExport, outputDir string, withPosters bool) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.Username + "_favorites"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
		Posters:   []string{},
	}

	posters := map[string]string{}
	if withPosters {
		for _, movie := range export.Movies {
			if movie.ImagePath == "" {
				continue
			}
			imageData, err := DownloadImage(ctx, movie.ImagePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to download poster for %s: %v\n", movie.Title, err)
				continue
			}

			name := movie.ID + ".jpg"
			posterPath := filepath.Join(outputDir, name)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster for %s: %v\n", movie.Title, err)
				continue
			}
			posters[movie.ID] = name
			result.Posters = append(result.Posters, posterPath)
			result.Files = append(result.Files, posterPath)
		}
	}

	mdData, err := ExportToMarkdown(export, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

// FormatMovie renders a movie's details for the terminal.
func FormatMovie(movie *models.Movie, favorite bool) string {
	var b strings.Builder

	title := movie.Title
	if favorite {
		title += " ★"
	}
	b.WriteString(title + "\n")
	b.WriteString(fmt.Sprintf("  Genre:    %s\n", movie.Genre.Name))
	b.WriteString(fmt.Sprintf("  Director: %s\n", movie.Director.Name))
	if len(movie.Actors) > 0 {
		b.WriteString(fmt.Sprintf("  Actors:   %s\n", strings.Join(movie.Actors, ", ")))
	}
	if movie.Description != "" {
		b.WriteString("\n  " + movie.Description + "\n")
	}
	return b.String()
}

// FormatGenre renders a genre for the terminal.
func FormatGenre(genre *models.Genre) string {
	return fmt.Sprintf("%s\n\n  %s\n", genre.Name, genre.Description)
}

// FormatDirector renders a director for the terminal, with life dates when known.
func FormatDirector(director *models.Director) string {
	var b strings.Builder
	b.WriteString(director.Name)

	birth := formatYear(director.Birth)
	death := formatYear(director.Death)
	switch {
	case birth != "" && death != "":
		b.WriteString(fmt.Sprintf(" (%s - %s)", birth, death))
	case birth != "":
		b.WriteString(fmt.Sprintf(" (born %s)", birth))
	}
	b.WriteString("\n")

	if director.Bio != "" {
		b.WriteString("\n  " + director.Bio + "\n")
	}
	return b.String()
}

// FormatProfile renders a loaded profile for the terminal.
func FormatProfile(view *models.ProfileView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Username: %s\n", view.Username))
	b.WriteString(fmt.Sprintf("Email:    %s\n", view.Email))
	if view.Birthday != "" {
		b.WriteString(fmt.Sprintf("Birthday: %s\n", view.Birthday))
	}

	b.WriteString(fmt.Sprintf("\nFavorites (%d):\n", len(view.FavoriteMovies)))
	for _, movie := range view.FavoriteMovies {
		b.WriteString(fmt.Sprintf("  - %s\n", movie.Title))
	}
	return b.String()
}

func formatYear(date string) string {
	if date == "" {
		return ""
	}
	t, err := models.ParseDate(date)
	if err != nil {
		return date
	}
	return strconv.Itoa(t.UTC().Year())
}

func extension(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "csv"
	case FormatMarkdown, "md":
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}
