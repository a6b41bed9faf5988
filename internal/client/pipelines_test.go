package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/concourse-client/internal/client"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Test static errors.
var (
	ErrTestNetwork = errors.New("connect: connection refused")
)

type call struct {
	method  string
	url     string
	headers http.Header
}

// recordingCaller records every call and answers with a canned response.
type recordingCaller struct {
	mu       sync.Mutex
	calls    []call
	body     []byte
	err      error
	defaults http.Header
}

func (r *recordingCaller) record(method, url string, headers http.Header) (*concourse.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call{method: method, url: url, headers: headers})
	if r.err != nil {
		return nil, r.err
	}

	return &concourse.Response{StatusCode: http.StatusOK, Body: r.body}, nil
}

func (r *recordingCaller) Get(ctx context.Context, url string, headers http.Header) (*concourse.Response, error) {
	return r.record(http.MethodGet, url, headers)
}

func (r *recordingCaller) Delete(ctx context.Context, url string, headers http.Header) (*concourse.Response, error) {
	return r.record(http.MethodDelete, url, headers)
}

func (r *recordingCaller) DefaultHeaders() http.Header {
	return r.defaults.Clone()
}

func newTestClient(t *testing.T, caller *recordingCaller) *client.Client {
	t.Helper()

	c, err := client.New(&concourse.Config{
		APIURL: "https://ci.example.com/api/v1",
		Team:   &concourse.Team{ID: 1, Name: "main"},
		Token:  "secret",
		Caller: caller,
	})
	require.NoError(t, err)

	return c
}

func TestClient_ListPipelines(t *testing.T) {
	t.Parallel()

	caller := &recordingCaller{body: []byte(`[
		{"id":1,"name":"alpha","team_name":"main","paused":false,"public":true},
		{"id":2,"name":"beta","team_name":"main","paused":true,"paused_by":"ops","paused_at":1700000000}
	]`)}
	c := newTestClient(t, caller)

	pipelines, err := c.ListPipelines(context.Background())
	require.NoError(t, err)

	require.Len(t, caller.calls, 1)
	assert.Equal(t, http.MethodGet, caller.calls[0].method)
	assert.Equal(t, "https://ci.example.com/api/v1/teams/main/pipelines", caller.calls[0].url)
	assert.Equal(t, "Bearer secret", caller.calls[0].headers.Get("Authorization"))

	require.Len(t, pipelines, 2)
	assert.Equal(t, "alpha", pipelines[0].Name)
	assert.Equal(t, "main/alpha", pipelines[0].Identifier)
	assert.Equal(t, concourse.Team{ID: 1, Name: "main"}, pipelines[0].Team)
	assert.Equal(t, "beta", pipelines[1].Name)
	assert.True(t, pipelines[1].Paused)
	assert.Equal(t, int64(1700000000), pipelines[1].PausedAt.Unix())
}

func TestClient_ListPipelines_Empty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &recordingCaller{body: []byte(`[]`)})

	pipelines, err := c.ListPipelines(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pipelines)
	assert.Empty(t, pipelines)
}

func TestClient_GetPipeline(t *testing.T) {
	t.Parallel()

	caller := &recordingCaller{body: []byte(`{"id":7,"name":"deploy-app","team_name":"main","groups":[{"name":"all","jobs":["build"]}]}`)}
	c := newTestClient(t, caller)

	pipeline, err := c.GetPipeline(context.Background(), "deploy-app")
	require.NoError(t, err)

	require.Len(t, caller.calls, 1)
	assert.Equal(t, http.MethodGet, caller.calls[0].method)
	assert.Equal(t, "https://ci.example.com/api/v1/teams/main/pipelines/deploy-app", caller.calls[0].url)
	assert.Equal(t, "Bearer secret", caller.calls[0].headers.Get("Authorization"))

	assert.Equal(t, 7, pipeline.ID)
	assert.Equal(t, "main/deploy-app", pipeline.Identifier)
	require.Len(t, pipeline.Groups, 1)
	assert.Equal(t, []string{"build"}, pipeline.Groups[0].Jobs)
}

func TestClient_GetPipeline_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, &recordingCaller{body: []byte(`{"id":7,"team_name":"main"}`)})

	_, err := c.GetPipeline(context.Background(), "deploy-app")
	require.Error(t, err)
	assert.ErrorIs(t, err, concourse.ErrMissingWireField)

	reprErr := &concourse.RepresentationError{}
	assert.ErrorAs(t, err, &reprErr)
}

func TestClient_DeletePipeline(t *testing.T) {
	t.Parallel()

	caller := &recordingCaller{body: []byte(`ignored, not json`)}
	c := newTestClient(t, caller)

	err := c.DeletePipeline(context.Background(), "deploy-app")
	require.NoError(t, err)

	require.Len(t, caller.calls, 1)
	assert.Equal(t, http.MethodDelete, caller.calls[0].method)
	assert.Equal(t, "https://ci.example.com/api/v1/teams/main/pipelines/deploy-app", caller.calls[0].url)
	assert.Equal(t, "Bearer secret", caller.calls[0].headers.Get("Authorization"))
}

func TestClient_TransportErrorsPassThrough(t *testing.T) {
	t.Parallel()

	httpErr := &concourse.HTTPError{Method: "GET", StatusCode: 500, Status: "500 Internal Server Error"}

	tests := []struct {
		name string
		err  error
		run  func(*client.Client) error
	}{
		{
			name: "delete with network error",
			err:  ErrTestNetwork,
			run: func(c *client.Client) error {
				return c.DeletePipeline(context.Background(), "deploy-app")
			},
		},
		{
			name: "get with http error",
			err:  httpErr,
			run: func(c *client.Client) error {
				_, err := c.GetPipeline(context.Background(), "deploy-app")

				return err
			},
		},
		{
			name: "list with http error",
			err:  httpErr,
			run: func(c *client.Client) error {
				_, err := c.ListPipelines(context.Background())

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, &recordingCaller{err: tt.err})

			err := tt.run(c)
			require.Error(t, err)
			assert.Same(t, tt.err, err)
			assert.Equal(t, tt.err.Error(), err.Error())
		})
	}
}

func TestClient_PipelineNameRequired(t *testing.T) {
	t.Parallel()

	caller := &recordingCaller{}
	c := newTestClient(t, caller)

	_, err := c.GetPipeline(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, `Invalid parameter(s): ["pipelineName" is required].`, err.Error())

	err = c.DeletePipeline(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, `Invalid parameter(s): ["pipelineName" is required].`, err.Error())

	validationErr := &concourse.ValidationError{}
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, caller.calls)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(nil)
		assert.ErrorIs(t, err, concourse.ErrConfigRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&concourse.Config{APIURL: "spinach"})
		require.Error(t, err)
		assert.Equal(t, `Invalid parameter(s): ["apiUrl" must be a valid uri, "team" is required].`, err.Error())
	})

	t.Run("api url with a query string", func(t *testing.T) {
		t.Parallel()

		caller := &recordingCaller{body: []byte(`[]`)}

		_, err := client.New(&concourse.Config{
			APIURL: "https://ci.example.com/api/v1?x=1",
			Team:   &concourse.Team{Name: "main"},
			Caller: caller,
		})
		require.Error(t, err)
		assert.Equal(t, `Invalid parameter(s): ["apiUrl" must be a valid uri].`, err.Error())
		assert.Empty(t, caller.calls)
	})

	t.Run("trailing slashes on the api url", func(t *testing.T) {
		t.Parallel()

		caller := &recordingCaller{body: []byte(`[]`)}

		c, err := client.New(&concourse.Config{
			APIURL: "https://ci.example.com/api/v1//",
			Team:   &concourse.Team{Name: "main"},
			Caller: caller,
		})
		require.NoError(t, err)

		_, err = c.ListPipelines(context.Background())
		require.NoError(t, err)
		require.Len(t, caller.calls, 1)
		assert.Equal(t, "https://ci.example.com/api/v1/teams/main/pipelines", caller.calls[0].url)
	})

	t.Run("bearer header from caller defaults", func(t *testing.T) {
		t.Parallel()

		defaults := http.Header{}
		defaults.Set("Authorization", "Bearer from-caller")

		caller := &recordingCaller{body: []byte(`[]`), defaults: defaults}

		c, err := client.New(&concourse.Config{
			APIURL: "https://ci.example.com/",
			Team:   &concourse.Team{Name: "main"},
			Caller: caller,
		})
		require.NoError(t, err)

		defaults.Set("Authorization", "Bearer changed")

		_, err = c.ListPipelines(context.Background())
		require.NoError(t, err)
		require.Len(t, caller.calls, 1)
		assert.Equal(t, "https://ci.example.com/teams/main/pipelines", caller.calls[0].url)
		assert.Equal(t, "Bearer from-caller", caller.calls[0].headers.Get("Authorization"))
	})

	t.Run("team is copied", func(t *testing.T) {
		t.Parallel()

		team := &concourse.Team{ID: 4, Name: "main"}

		c, err := client.New(&concourse.Config{APIURL: "https://ci.example.com", Team: team, Caller: &recordingCaller{}})
		require.NoError(t, err)

		team.Name = "other"
		assert.Equal(t, concourse.Team{ID: 4, Name: "main"}, c.Team())
	})

	t.Run("unsupported cache type", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&concourse.Config{
			APIURL: "https://ci.example.com",
			Team:   &concourse.Team{Name: "main"},
			Cache:  &concourse.CacheConfig{Type: "redis"},
		})
		require.ErrorIs(t, err, concourse.ErrUnsupportedCacheType)
	})
}

func TestNew_DefaultTransport(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		methods []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		methods = append(methods, request.Method+" "+request.URL.Path)
		mu.Unlock()

		assert.Equal(t, "Bearer secret", request.Header.Get("Authorization"))

		switch request.Method {
		case http.MethodGet:
			_, _ = writer.Write([]byte(`[{"id":1,"name":"alpha","team_name":"main"}]`))
		case http.MethodDelete:
			writer.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	c, err := client.New(&concourse.Config{
		APIURL: server.URL + "/api/v1",
		Team:   &concourse.Team{ID: 1, Name: "main"},
		Token:  "secret",
		Cache:  &concourse.CacheConfig{Type: concourse.CacheTypeMemory},
	})
	require.NoError(t, err)

	defer func() { _ = c.Close() }()

	ctx := context.Background()

	_, err = c.ListPipelines(ctx)
	require.NoError(t, err)

	pipelines, err := c.ListPipelines(ctx)
	require.NoError(t, err)
	require.Len(t, pipelines, 1)

	require.NoError(t, c.DeletePipeline(ctx, "alpha"))

	_, err = c.ListPipelines(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{
		"GET /api/v1/teams/main/pipelines",
		"DELETE /api/v1/teams/main/pipelines/alpha",
		"GET /api/v1/teams/main/pipelines",
	}, methods)
}

func TestNew_DefaultTransportNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "pipeline not found", http.StatusNotFound)
	}))
	defer server.Close()

	c, err := client.New(&concourse.Config{APIURL: server.URL, Team: &concourse.Team{Name: "main"}})
	require.NoError(t, err)

	_, err = c.GetPipeline(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, concourse.IsNotFound(err))
}
