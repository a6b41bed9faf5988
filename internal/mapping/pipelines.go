// Package mapping converts pipelines between the API's wire
// representation and the representation exposed to callers.
package mapping

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

const pipelineResource = "pipeline"

// Identifier returns the canonical "<team>/<pipeline>" identifier.
func Identifier(teamName, pipelineName string) string {
	return teamName + "/" + pipelineName
}

// DecodePipeline parses a single pipeline payload and maps it.
func DecodePipeline(body []byte, team concourse.Team) (*concourse.Pipeline, error) {
	var api concourse.PipelineAPI

	err := json.Unmarshal(body, &api)
	if err != nil {
		return nil, &concourse.RepresentationError{Resource: pipelineResource, Index: -1, Err: err}
	}

	pipeline, err := ToClient(api, team)
	if err != nil {
		return nil, err
	}

	return &pipeline, nil
}

// DecodePipelineList parses a pipeline array payload and maps it.
func DecodePipelineList(body []byte, team concourse.Team) ([]concourse.Pipeline, error) {
	var list []concourse.PipelineAPI

	err := json.Unmarshal(body, &list)
	if err != nil {
		return nil, &concourse.RepresentationError{Resource: pipelineResource, Index: -1, Err: err}
	}

	return ToClientList(list, team)
}

// ToClient maps a wire pipeline. The owning team is nested as a Team;
// when it is the client's own team the known team id is carried over.
// A payload without a pipeline or team name is rejected.
func ToClient(api concourse.PipelineAPI, team concourse.Team) (concourse.Pipeline, error) {
	return toClient(api, team, -1)
}

// ToClientList maps every element of list, preserving order. An empty
// or nil list maps to an empty, non-nil slice.
func ToClientList(list []concourse.PipelineAPI, team concourse.Team) ([]concourse.Pipeline, error) {
	pipelines := make([]concourse.Pipeline, 0, len(list))

	for i, api := range list {
		pipeline, err := toClient(api, team, i)
		if err != nil {
			return nil, err
		}

		pipelines = append(pipelines, pipeline)
	}

	return pipelines, nil
}

func toClient(api concourse.PipelineAPI, team concourse.Team, index int) (concourse.Pipeline, error) {
	if api.Name == "" {
		return concourse.Pipeline{}, missingField(index, "name")
	}

	if api.TeamName == "" {
		return concourse.Pipeline{}, missingField(index, "team_name")
	}

	owner := concourse.Team{Name: api.TeamName}
	if api.TeamName == team.Name {
		owner.ID = team.ID
	}

	return concourse.Pipeline{
		ID:            api.ID,
		Name:          api.Name,
		Identifier:    Identifier(api.TeamName, api.Name),
		Team:          owner,
		InstanceVars:  maps.Clone(api.InstanceVars),
		Paused:        api.Paused,
		PausedBy:      api.PausedBy,
		PausedAt:      fromUnix(api.PausedAt),
		Public:        api.Public,
		Archived:      api.Archived,
		Groups:        groupsToClient(api.Groups),
		Display:       displayToClient(api.Display),
		LastUpdated:   fromUnix(api.LastUpdated),
		ParentBuildID: api.ParentBuildID,
		ParentJobID:   api.ParentJobID,
	}, nil
}

// ToAPI maps a client pipeline back to its wire representation.
func ToAPI(pipeline concourse.Pipeline) concourse.PipelineAPI {
	return concourse.PipelineAPI{
		ID:            pipeline.ID,
		Name:          pipeline.Name,
		InstanceVars:  maps.Clone(pipeline.InstanceVars),
		Paused:        pipeline.Paused,
		PausedBy:      pipeline.PausedBy,
		PausedAt:      toUnix(pipeline.PausedAt),
		Public:        pipeline.Public,
		Archived:      pipeline.Archived,
		Groups:        groupsToAPI(pipeline.Groups),
		TeamName:      pipeline.Team.Name,
		Display:       displayToAPI(pipeline.Display),
		LastUpdated:   toUnix(pipeline.LastUpdated),
		ParentBuildID: pipeline.ParentBuildID,
		ParentJobID:   pipeline.ParentJobID,
	}
}

// ToAPIList maps every element of pipelines back to the wire representation.
func ToAPIList(pipelines []concourse.Pipeline) []concourse.PipelineAPI {
	list := make([]concourse.PipelineAPI, 0, len(pipelines))
	for _, pipeline := range pipelines {
		list = append(list, ToAPI(pipeline))
	}

	return list
}

func missingField(index int, field string) error {
	return &concourse.RepresentationError{
		Resource: pipelineResource,
		Index:    index,
		Err:      fmt.Errorf("%w: %s", concourse.ErrMissingWireField, field),
	}
}

func groupsToClient(groups []concourse.GroupAPI) []concourse.Group {
	if groups == nil {
		return nil
	}

	out := make([]concourse.Group, 0, len(groups))
	for _, group := range groups {
		out = append(out, concourse.Group{
			Name:      group.Name,
			Jobs:      slices.Clone(group.Jobs),
			Resources: slices.Clone(group.Resources),
		})
	}

	return out
}

func groupsToAPI(groups []concourse.Group) []concourse.GroupAPI {
	if groups == nil {
		return nil
	}

	out := make([]concourse.GroupAPI, 0, len(groups))
	for _, group := range groups {
		out = append(out, concourse.GroupAPI{
			Name:      group.Name,
			Jobs:      slices.Clone(group.Jobs),
			Resources: slices.Clone(group.Resources),
		})
	}

	return out
}

func displayToClient(display *concourse.DisplayAPI) *concourse.Display {
	if display == nil {
		return nil
	}

	return &concourse.Display{
		BackgroundImage:  display.BackgroundImage,
		BackgroundFilter: display.BackgroundFilter,
	}
}

func displayToAPI(display *concourse.Display) *concourse.DisplayAPI {
	if display == nil {
		return nil
	}

	return &concourse.DisplayAPI{
		BackgroundImage:  display.BackgroundImage,
		BackgroundFilter: display.BackgroundFilter,
	}
}

// fromUnix treats 0 as "never".
func fromUnix(seconds int64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}

	return time.Unix(seconds, 0).UTC()
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.Unix()
}
