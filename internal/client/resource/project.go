package resource

import (
	"encoding/json"
	"time"
)

// ProjectsEndpoint is the projects collection path.
const ProjectsEndpoint = "/api/projects"

// Project is a showcase entry as returned by the API.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GithubLink  string    `json:"githubLink,omitempty"`
	LiveLink    string    `json:"liveLink,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// GetID identifies the project inside a collection.
func (p Project) GetID() string {
	return p.ID
}

// UnmarshalJSON also accepts the legacy "_id" key.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		LegacyID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	if p.ID == "" {
		p.ID = aux.LegacyID
	}
	return nil
}
