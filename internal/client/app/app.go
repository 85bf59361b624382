// Package app wires the admin client together and runs its commands.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/dtroode/portfolio/internal/client/authz"
	"github.com/dtroode/portfolio/internal/client/controller"
	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/session"
	"github.com/dtroode/portfolio/internal/client/view"
	"github.com/dtroode/portfolio/internal/config"
	"github.com/dtroode/portfolio/internal/logger"
)

// ErrQuit ends the shell.
var ErrQuit = errors.New("quit")

// App owns one client session and its controllers.
type App struct {
	cfg    *config.ClientConfig
	in     *bufio.Reader
	out    io.Writer
	logger *logger.Logger

	client   *resource.Client
	provider *session.Provider
	gate     authz.Gate

	navbar   *controller.Navbar
	projects *controller.Collection[resource.Project]
	resume   *controller.Resume
	login    *controller.Login

	path string
}

// New builds the client stack described by cfg.
func New(ctx context.Context, cfg *config.ClientConfig, in io.Reader, out io.Writer, logger *logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		gate:   authz.NewGate(cfg.AdminUID),
		path:   "/",
	}

	var auth session.Authenticator
	switch cfg.AuthProvider {
	case "firebase":
		firebaseAuth, err := session.NewFirebaseAuthenticator(ctx, cfg.FirebaseAPIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		auth = firebaseAuth
	default:
		auth = resource.NewAuthAPI(resource.NewClient(cfg.APIURL, cfg.Timeout, nil, nil))
	}

	a.provider = session.NewProvider(auth, logger)
	a.client = resource.NewClient(cfg.APIURL, cfg.Timeout, a.provider, a.provider)

	var strategy controller.ResumeStrategy
	switch cfg.ResumeStrategy {
	case "static":
		strategy = controller.NewStaticResume(a.client, cfg.ResumePath)
	default:
		strategy = controller.NewServerResume(a.client)
	}

	deps := controller.Deps{
		Client:    a.client,
		Provider:  a.provider,
		Gate:      a.gate,
		Notifier:  a,
		Navigator: a,
		Confirmer: a,
		Logger:    logger,
	}

	a.navbar = controller.NewNavbar(deps)
	a.projects = controller.NewCollection[resource.Project](controller.ProjectsConfig, deps)
	a.resume = controller.NewResume(strategy, deps)
	a.login = controller.NewLogin(deps)

	return a, nil
}

// Close releases the session subscriptions.
func (a *App) Close() {
	a.navbar.Close()
	a.projects.Close()
	a.resume.Close()
}

// Notify prints a user-facing message.
func (a *App) Notify(message string) {
	fmt.Fprintf(a.out, "! %s\n", message)
}

// Navigate switches the current view and renders it.
func (a *App) Navigate(path string) {
	a.path = path
	fmt.Fprintf(a.out, "-> %s\n", path)
	a.render()
}

// Confirm asks on the input stream. Anything but y/yes declines.
func (a *App) Confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *App) render() {
	switch a.path {
	case "/":
		view.Resume(a.out, a.resume.State())
	case "/projects":
		view.Projects(a.out, a.projects.State(), a.client.BaseURL())
	case "/about":
		view.About(a.out)
	case controller.LoginPath:
		fmt.Fprintln(a.out, "Sign in with: login EMAIL PASSWORD")
	}
}

// Run reads commands until EOF or quit.
func (a *App) Run(ctx context.Context) error {
	view.Navbar(a.out, a.navbar.Links(), a.navbar.Identity())
	fmt.Fprintln(a.out, `Type "help" for commands.`)

	for {
		fmt.Fprint(a.out, "portfolio> ")
		line, err := a.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		args, perr := splitArgs(line)
		if perr != nil {
			a.Notify(perr.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}

		if err := a.Exec(ctx, args); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			a.logger.Debug("Shell: command failed", "command", args[0], "error", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// splitArgs splits a command line the way a POSIX shell would, without
// expanding variables or backticks.
func splitArgs(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	return args, nil
}
