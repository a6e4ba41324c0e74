package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/components"
	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/repositories"
	"github.com/desertthunder/myflix/internal/services"
	"github.com/desertthunder/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Session storage and the API client are opened on first use so that commands like
// "setup" and "dev serve" run without a database.
type Runner struct {
	config     *shared.Config
	store      models.SessionStore
	service    services.Service
	api        *services.MovieAPI
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      models.SessionStore
	Service    services.Service
	API        *services.MovieAPI
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Service == nil && opts.API != nil {
		opts.Service = opts.API
	}

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		service:    opts.Service,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, registerCommand, sessionCommand,
		profileCommand, moviesCommand, apiCommand, tuiCommand, devCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and every component it creates.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// open connects session storage and the API client when they were not injected.
func (r *Runner) open() error {
	if r.store == nil {
		db, err := shared.OpenStorage(r.config.Database)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		r.db = db
		r.store = repositories.NewSessionRepository(db)
		r.logger.Debug("opened session storage", "path", r.config.Database.Path)
	}

	if r.service == nil {
		r.api = services.NewMovieAPI(services.APIOpts{
			BaseURL:    r.config.API.BaseURL,
			HTTPClient: r.httpClient,
			Store:      r.store,
			RateLimit:  r.config.API.RateLimit,
			Timeout:    r.config.API.Timeout.Duration,
		})
		r.service = r.api
		r.logger.Debug("configured API client", "base_url", r.api.BaseURL())
	}
	return nil
}

// Close releases the session database if the runner opened it.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// deps returns the collaborators for components driven from the command line.
func (r *Runner) deps(confirmer components.Confirmer) components.Deps {
	return components.Deps{
		Service:   r.service,
		Store:     r.store,
		Notifier:  &cliNotifier{out: r.output},
		Navigator: &cliNavigator{logger: r.logger},
		Confirmer: confirmer,
		Logger:    r.logger,
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// prompt writes label and reads one line of input.
func (r *Runner) prompt(label string) (string, error) {
	r.writePlain("%s: ", label)
	line, err := r.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, label)
	}
	return trimLine(line), nil
}
