// Package request turns pipeline operations into HTTP request descriptors.
package request

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Operation identifies a team-scoped pipeline operation.
type Operation int

const (
	ListPipelines Operation = iota
	GetPipeline
	DeletePipeline
)

func (o Operation) String() string {
	switch o {
	case ListPipelines:
		return "ListPipelines"
	case GetPipeline:
		return "GetPipeline"
	case DeletePipeline:
		return "DeletePipeline"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// Descriptor is everything needed to issue one request.
type Descriptor struct {
	Method  string
	URL     string
	Headers http.Header
}

// Builder produces descriptors against a fixed base URL and header set.
type Builder struct {
	baseURL string
	headers http.Header
}

// NewBuilder captures baseURL and a copy of headers. Headers supplied
// later never leak into the builder.
func NewBuilder(baseURL string, headers http.Header) *Builder {
	fixed := headers.Clone()
	if fixed == nil {
		fixed = make(http.Header)
	}

	return &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: fixed,
	}
}

// BearerHeaders returns the header set carrying token as a bearer credential.
func BearerHeaders(token string) http.Header {
	headers := make(http.Header)
	if token != "" {
		headers.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	return headers
}

// BaseURL returns the base URL without a trailing slash.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Build returns the descriptor for op on team. name is ignored by
// ListPipelines.
func (b *Builder) Build(op Operation, team concourse.Team, name string) (Descriptor, error) {
	switch op {
	case ListPipelines:
		return b.descriptor(http.MethodGet, b.PipelinesURL(team.Name)), nil
	case GetPipeline:
		return b.descriptor(http.MethodGet, b.PipelineURL(team.Name, name)), nil
	case DeletePipeline:
		return b.descriptor(http.MethodDelete, b.PipelineURL(team.Name, name)), nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %s", concourse.ErrUnknownOperation, op)
	}
}

// PipelinesURL is the collection URL of team's pipelines.
func (b *Builder) PipelinesURL(teamName string) string {
	return b.baseURL + "/" + constants.APIPathTeams + "/" + url.PathEscape(teamName) + "/" + constants.APIPathPipelines
}

// PipelineURL is the URL of a single pipeline of team.
func (b *Builder) PipelineURL(teamName, pipelineName string) string {
	return b.PipelinesURL(teamName) + "/" + url.PathEscape(pipelineName)
}

func (b *Builder) descriptor(method, target string) Descriptor {
	return Descriptor{
		Method:  method,
		URL:     target,
		Headers: b.headers.Clone(),
	}
}
