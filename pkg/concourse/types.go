package concourse

import (
	"net/http"
	"time"
)

// Team identifies the team that owns every resource a client addresses.
type Team struct {
	ID   int    `json:"id,omitempty" mapstructure:"id"   validate:"omitempty,gt=0" yaml:"id,omitempty"`
	Name string `json:"name"         mapstructure:"name" validate:"required"       yaml:"name"`
}

// PipelineAPI is a pipeline as the remote service sends it.
type PipelineAPI struct {
	ID            int                    `json:"id"`
	Name          string                 `json:"name"`
	InstanceVars  map[string]interface{} `json:"instance_vars,omitempty"`
	Paused        bool                   `json:"paused"`
	PausedBy      string                 `json:"paused_by,omitempty"`
	PausedAt      int64                  `json:"paused_at,omitempty"`
	Public        bool                   `json:"public"`
	Archived      bool                   `json:"archived"`
	Groups        []GroupAPI             `json:"groups,omitempty"`
	TeamName      string                 `json:"team_name"`
	Display       *DisplayAPI            `json:"display,omitempty"`
	LastUpdated   int64                  `json:"last_updated,omitempty"`
	ParentBuildID int                    `json:"parent_build_id,omitempty"`
	ParentJobID   int                    `json:"parent_job_id,omitempty"`
}

// GroupAPI is a named job grouping inside a pipeline.
type GroupAPI struct {
	Name      string   `json:"name"`
	Jobs      []string `json:"jobs,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// DisplayAPI holds the UI display settings of a pipeline.
type DisplayAPI struct {
	BackgroundImage  string `json:"background_image,omitempty"`
	BackgroundFilter string `json:"background_filter,omitempty"`
}

// Pipeline is the caller-facing pipeline.
type Pipeline struct {
	ID            int                    `json:"id"                        yaml:"id"`
	Name          string                 `json:"name"                      yaml:"name"`
	Identifier    string                 `json:"identifier"                yaml:"identifier"`
	Team          Team                   `json:"team"                      yaml:"team"`
	InstanceVars  map[string]interface{} `json:"instanceVars,omitempty"    yaml:"instanceVars,omitempty"`
	Paused        bool                   `json:"paused"                    yaml:"paused"`
	PausedBy      string                 `json:"pausedBy,omitempty"        yaml:"pausedBy,omitempty"`
	PausedAt      time.Time              `json:"pausedAt"                  yaml:"pausedAt"`
	Public        bool                   `json:"public"                    yaml:"public"`
	Archived      bool                   `json:"archived"                  yaml:"archived"`
	Groups        []Group                `json:"groups,omitempty"          yaml:"groups,omitempty"`
	Display       *Display               `json:"display,omitempty"         yaml:"display,omitempty"`
	LastUpdated   time.Time              `json:"lastUpdated"               yaml:"lastUpdated"`
	ParentBuildID int                    `json:"parentBuildId,omitempty"   yaml:"parentBuildId,omitempty"`
	ParentJobID   int                    `json:"parentJobId,omitempty"     yaml:"parentJobId,omitempty"`
}

// Group is a named job grouping inside a pipeline.
type Group struct {
	Name      string   `json:"name"                yaml:"name"`
	Jobs      []string `json:"jobs,omitempty"      yaml:"jobs,omitempty"`
	Resources []string `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Display holds the UI display settings of a pipeline.
type Display struct {
	BackgroundImage  string `json:"backgroundImage,omitempty"  yaml:"backgroundImage,omitempty"`
	BackgroundFilter string `json:"backgroundFilter,omitempty" yaml:"backgroundFilter,omitempty"`
}

// Response is the result of a call that completed with a 2xx status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
