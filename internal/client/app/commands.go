package app

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/view"
)

const usage = `Commands:
  login [EMAIL PASSWORD]        sign in (defaults to PORTFOLIO_EMAIL / PORTFOLIO_PASSWORD)
  logout                        sign out
  whoami                        show the signed-in identity
  nav                           show navigation
  projects [list]               list projects
  projects add -title T -description D [-github URL] [-live URL] [-image PATH]
  projects delete ID            delete a project (asks for confirmation)
  resume [show]                 show the resume download link
  resume upload PATH.pdf        replace the resume
  about                         show the about section
  help                          show this help
  exit                          leave the shell
`

// Exec runs one command.
func (a *App) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	case "exit", "quit":
		return ErrQuit
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.navbar.Logout(ctx)
	case "whoami":
		identity := a.provider.Current()
		view.Whoami(a.out, identity, a.gate.IsAdmin(identity))
		return nil
	case "nav":
		view.Navbar(a.out, a.navbar.Links(), a.navbar.Identity())
		return nil
	case "about":
		a.Navigate("/about")
		return nil
	case "projects":
		return a.cmdProjects(ctx, args[1:])
	case "resume":
		return a.cmdResume(ctx, args[1:])
	default:
		a.Notify(fmt.Sprintf("unknown command %q", args[0]))
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	email, password := a.cfg.Email, a.cfg.Password
	if len(args) >= 1 {
		email = args[0]
	}
	if len(args) >= 2 {
		password = args[1]
	}
	return a.login.Submit(ctx, email, password)
}

// ensureSignedIn signs in with configured credentials before a mutation.
// Without credentials it leaves the session as is and the gate decides.
func (a *App) ensureSignedIn(ctx context.Context) {
	if a.provider.Current() != nil || a.cfg.Email == "" || a.cfg.Password == "" {
		return
	}
	_ = a.login.Submit(ctx, a.cfg.Email, a.cfg.Password)
}

func (a *App) cmdProjects(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		err := a.projects.Load(ctx)
		a.path = "/projects"
		view.Projects(a.out, a.projects.State(), a.client.BaseURL())
		return err

	case "add":
		fs := flag.NewFlagSet("projects add", flag.ContinueOnError)
		fs.SetOutput(a.out)
		title := fs.String("title", "", "project title")
		description := fs.String("description", "", "project description")
		github := fs.String("github", "", "GitHub link")
		live := fs.String("live", "", "live demo link")
		image := fs.String("image", "", "path to an image")
		if err := fs.Parse(args); err != nil {
			return err
		}

		var file *resource.File
		if *image != "" {
			f, err := os.Open(*image)
			if err != nil {
				a.Notify(fmt.Sprintf("cannot open %s", *image))
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()
			file = &resource.File{
				Name:        filepath.Base(*image),
				ContentType: mime.TypeByExtension(filepath.Ext(*image)),
				Reader:      f,
			}
		}

		a.ensureSignedIn(ctx)
		_, err := a.projects.Create(ctx, map[string]string{
			"title":       *title,
			"description": *description,
			"githubLink":  *github,
			"liveLink":    *live,
		}, file)
		if err != nil {
			return err
		}
		view.Projects(a.out, a.projects.State(), a.client.BaseURL())
		return nil

	case "delete":
		if len(args) != 1 {
			a.Notify("usage: projects delete ID")
			return fmt.Errorf("projects delete: missing id")
		}
		a.ensureSignedIn(ctx)
		deleted, err := a.projects.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if deleted {
			view.Projects(a.out, a.projects.State(), a.client.BaseURL())
		}
		return nil

	default:
		a.Notify(fmt.Sprintf("unknown projects command %q", sub))
		return fmt.Errorf("unknown projects command %q", sub)
	}
}

func (a *App) cmdResume(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "show":
		err := a.resume.Load(ctx)
		a.path = "/"
		view.Resume(a.out, a.resume.State())
		return err

	case "upload":
		a.ensureSignedIn(ctx)

		var file *resource.File
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				a.Notify(fmt.Sprintf("cannot open %s", args[0]))
				return fmt.Errorf("failed to open resume: %w", err)
			}
			defer f.Close()
			file = &resource.File{
				Name:        filepath.Base(args[0]),
				ContentType: mime.TypeByExtension(filepath.Ext(args[0])),
				Reader:      f,
			}
		}

		if err := a.resume.Upload(ctx, file); err != nil {
			return err
		}
		view.Resume(a.out, a.resume.State())
		return nil

	default:
		a.Notify(fmt.Sprintf("unknown resume command %q", sub))
		return fmt.Errorf("unknown resume command %q", sub)
	}
}
