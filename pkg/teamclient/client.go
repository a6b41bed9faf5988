package teamclient

import (
	"github.com/fivetwenty-io/concourse-client/internal/client"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// New creates a pipelines client for config.Team. Invalid configuration
// is reported as a *concourse.ValidationError.
func New(config *concourse.Config) (concourse.TeamPipelinesClient, error) {
	if config == nil {
		return nil, concourse.ErrConfigRequired
	}

	c, err := client.New(config)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewWithToken creates a client using the default transport and a bearer token.
func NewWithToken(apiURL string, team concourse.Team, token string) (concourse.TeamPipelinesClient, error) {
	return New(&concourse.Config{
		APIURL: apiURL,
		Team:   &team,
		Token:  token,
	})
}

// NewWithCaller creates a client that sends every request through caller.
func NewWithCaller(apiURL string, team concourse.Team, caller concourse.Caller) (concourse.TeamPipelinesClient, error) {
	return New(&concourse.Config{
		APIURL: apiURL,
		Team:   &team,
		Caller: caller,
	})
}
