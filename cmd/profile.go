package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/formatter"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadProfile opens storage and loads the session user's profile.
func (r *Runner) loadProfile(ctx context.Context, confirmer components.Confirmer) (*components.UserProfile, error) {
	if err := r.open(); err != nil {
		return nil, err
	}

	profile := components.NewUserProfile(ctx, r.deps(confirmer))
	if _, err := profile.UserProfile(); err != nil {
		if profile.View() == nil {
			profile.Destroy()
			return nil, err
		}
		r.logger.Warn("favorites unavailable", "error", err)
	}
	return profile, nil
}

// ProfileShow prints the profile with its resolved favorite movies.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.loadProfile(ctx, nil)
	if err != nil {
		return err
	}
	defer profile.Destroy()

	if cmd.Bool("json") {
		view := *profile.View()
		view.Password = ""
		return r.writeJSON(view, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Profile")
	return r.writePlain("%s", formatter.FormatProfile(profile.View()))
}

// ProfileUpdate applies the given flags on top of the current profile. The password is only changed when set.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.loadProfile(ctx, nil)
	if err != nil {
		return err
	}
	defer profile.Destroy()

	edited := *profile.View()
	edited.Password = cmd.String("password")
	if v := cmd.String("username"); v != "" {
		edited.Username = v
	}
	if v := cmd.String("email"); v != "" {
		edited.Email = v
	}
	if v := cmd.String("birthday"); v != "" {
		edited.Birthday = v
	}
	if _, err := profile.UpdateProfile(&edited); err != nil {
		return err
	}
	return r.writePlain("%s", formatter.FormatProfile(profile.View()))
}

// ProfileDelete deletes the account after confirmation and clears the session.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	var confirmer components.Confirmer = &stdinConfirmer{in: r.input, out: r.output}
	if cmd.Bool("yes") {
		confirmer = assumeYes{}
	}

	if err := r.open(); err != nil {
		return err
	}
	profile := components.NewUserProfile(ctx, r.deps(confirmer))
	defer profile.Destroy()

	if err := profile.DeleteUser(); err != nil {
		return err
	}
	return r.writePlain("✓ Account deleted\n")
}

// ProfileExport writes the favorite movies to a file.
func (r *Runner) ProfileExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	profile, err := r.loadProfile(ctx, nil)
	if err != nil {
		return err
	}
	defer profile.Destroy()

	export := formatter.NewFavoritesExport(profile.View())
	r.logger.Info("exporting favorites", "username", export.Username, "count", len(export.Movies), "format", format)

	if cmd.Bool("posters") {
		if format != formatter.FormatMarkdown && format != "md" {
			return fmt.Errorf("%w: --posters requires --format markdown", shared.ErrInvalidArgument)
		}
		if output == "" {
			output = export.Username + "_favorites"
		}
		result, err := formatter.WriteMarkdownExport(ctx, export, output, true)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported %d movies to %s (%d posters)\n", len(export.Movies), result.Directory, len(result.Posters))
	}

	path, err := formatter.WriteExport(export, format, output)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Exported %d movies to %s\n", len(export.Movies), path)
}
