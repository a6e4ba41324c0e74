// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the session database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml with default values",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Account username (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				Sources: cli.EnvVars("FLIX_PASSWORD"),
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Clear the stored session",
		Action: r.Logout,
	}
}

func registerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "register",
		Aliases: []string{"signup"},
		Usage:   "Create a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "At least 5 letters or digits", Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address", Required: true},
			&cli.StringFlag{Name: "birthday", Aliases: []string{"b"}, Usage: "Birthday as YYYY-MM-DD"},
		},
		Action: r.Register,
	}
}

// sessionCommand inspects the stored session
func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Inspect the stored session",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the logged in user and token expiry",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.SessionStatus,
			},
		},
	}
}

// profileCommand handles account operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"me"},
		Usage:   "Show and manage your account",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the profile and favorite movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields; omitted fields keep their value",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "New username"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "New email address"},
					&cli.StringFlag{Name: "birthday", Aliases: []string{"b"}, Usage: "New birthday as YYYY-MM-DD"},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete your account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: r.ProfileDelete,
			},
			{
				Name:  "export",
				Usage: "Export favorite movies",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (csv, markdown, text, json)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, or directory for markdown with --posters",
					},
					&cli.BoolFlag{
						Name:  "posters",
						Usage: "Download poster images next to a markdown export",
					},
				},
				Action: r.ProfileExport,
			},
		},
	}
}

// moviesCommand handles catalog operations
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all movies; favorites are starred",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
					&cli.BoolFlag{Name: "favorites", Usage: "Only list favorite movies"},
				},
				Action: r.MoviesList,
			},
			{
				Name:      "show",
				Usage:     "Show a movie by title",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Action:    r.MoviesShow,
			},
			{
				Name:      "genre",
				Usage:     "Describe a genre",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.MoviesGenre,
			},
			{
				Name:      "director",
				Usage:     "Describe a director",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.MoviesDirector,
			},
			{
				Name:      "open",
				Usage:     "Open a movie poster in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Action:    r.MoviesOpen,
			},
			{
				Name:  "favorite",
				Usage: "Manage favorite movies",
				Commands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a movie to favorites by ID",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Action:    r.FavoriteAdd,
					},
					{
						Name:      "remove",
						Aliases:   []string{"rm"},
						Usage:     "Remove a movie from favorites by ID",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Action:    r.FavoriteRemove,
					},
				},
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Authenticated GET, prints the raw response",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output compact JSON"},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal client",
		Action:  r.TUI,
	}
}

// devCommand runs local development helpers
func devCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "Development helpers",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run an in-memory movie API backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "Listen host (overrides [server] host)"},
					&cli.IntFlag{Name: "port", Usage: "Listen port (overrides [server] port)"},
				},
				Action: r.DevServe,
			},
		},
	}
}
