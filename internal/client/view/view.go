// Package view renders controller state as text.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtroode/portfolio/internal/client/controller"
	"github.com/dtroode/portfolio/internal/client/resource"
	"github.com/dtroode/portfolio/internal/client/session"
)

// Navbar renders the navigation links and who is signed in.
func Navbar(w io.Writer, links []controller.Link, identity *session.Identity) {
	labels := make([]string, 0, len(links))
	for _, l := range links {
		labels = append(labels, fmt.Sprintf("%s (%s)", l.Label, l.Path))
	}
	fmt.Fprintln(w, strings.Join(labels, " | "))
	if identity != nil {
		fmt.Fprintf(w, "Signed in as %s\n", displayName(identity))
	}
}

// Projects renders the showcase list.
func Projects(w io.Writer, st controller.CollectionState[resource.Project], baseURL string) {
	fmt.Fprintln(w, "Projects")
	if st.Loading {
		fmt.Fprintln(w, "Loading projects...")
		return
	}
	if st.LoadFailed {
		fmt.Fprintln(w, "Failed to load projects.")
	}

	fmt.Fprintf(w, "Total projects: %d\n", len(st.Items))
	for i, p := range st.Items {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   %s\n", p.Description)
		if p.GithubLink != "" {
			fmt.Fprintf(w, "   GitHub: %s\n", p.GithubLink)
		}
		if p.LiveLink != "" {
			fmt.Fprintf(w, "   Live: %s\n", p.LiveLink)
		}
		if p.Image != "" {
			fmt.Fprintf(w, "   Image: %s\n", absolute(baseURL, p.Image))
		}
		if st.CanMutate {
			fmt.Fprintf(w, "   id: %s  (projects delete %s)\n", p.ID, p.ID)
		}
	}

	if st.CanMutate {
		fmt.Fprintln(w, "\nAdd a project: projects add -title T -description D [-github URL] [-live URL] [-image PATH]")
	}
	if st.Submitting {
		fmt.Fprintln(w, "Submitting...")
	}
}

// Resume renders the home view.
func Resume(w io.Writer, st controller.ResumeState) {
	fmt.Fprintln(w, "Resume")
	switch {
	case st.Loading:
		fmt.Fprintln(w, "Loading resume...")
		return
	case st.LoadFailed:
		fmt.Fprintln(w, "Failed to load resume.")
	case st.Resume == nil:
		fmt.Fprintln(w, "No resume uploaded yet.")
	default:
		fmt.Fprintf(w, "%s\nDownload: %s\n", st.Resume.FileName, st.DownloadURL)
	}

	if st.CanUpload {
		fmt.Fprintln(w, "Upload a new resume: resume upload PATH.pdf")
	}
	if st.Uploading {
		fmt.Fprintln(w, "Uploading...")
	}
}

// Whoami renders the current identity.
func Whoami(w io.Writer, identity *session.Identity, admin bool) {
	if identity == nil {
		fmt.Fprintln(w, "Not signed in.")
		return
	}
	role := "visitor"
	if admin {
		role = "admin"
	}
	fmt.Fprintf(w, "%s (uid %s, %s)\n", displayName(identity), identity.UID, role)
}

// About renders the profile section.
func About(w io.Writer) {
	fmt.Fprint(w, aboutText)
}

const aboutText = `About
I build backend services and developer tooling, mostly in Go.
This portfolio lists selected projects and my current resume.
Use "projects list" to browse the showcase and "resume show" for the resume link.
`

func displayName(identity *session.Identity) string {
	if identity.Email != "" {
		return identity.Email
	}
	return identity.UID
}

func absolute(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(baseURL, "/") + path
}
