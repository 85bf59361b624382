package handler

import (
	"time"

	"github.com/dtroode/portfolio/internal/model"
)

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GithubLink  string    `json:"githubLink,omitempty"`
	LiveLink    string    `json:"liveLink,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProjectResponse(p model.Project) projectResponse {
	resp := projectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		GithubLink:  p.GithubLink,
		LiveLink:    p.LiveLink,
		CreatedAt:   p.CreatedAt,
	}
	if p.HasImage() {
		resp.Image = "/api/projects/" + p.ID.String() + "/image"
	}
	return resp
}

type createProjectRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	GithubLink  string `json:"githubLink" form:"githubLink"`
	LiveLink    string `json:"liveLink" form:"liveLink"`
}

type resumeResponse struct {
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func newResumeResponse(d model.ResumeDescriptor) resumeResponse {
	return resumeResponse{FileName: d.FileName, FilePath: d.FilePath, UploadedAt: d.UploadedAt}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Admin        bool      `json:"admin"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func newSessionResponse(s model.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UID:          s.Principal.UID,
		Email:        s.Principal.Email,
		Admin:        s.Principal.Admin,
		ExpiresAt:    s.ExpiresAt,
	}
}

type meResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin"`
}
