package client

import (
	"context"

	"github.com/fivetwenty-io/concourse-client/internal/mapping"
	"github.com/fivetwenty-io/concourse-client/internal/request"
	"github.com/fivetwenty-io/concourse-client/internal/validation"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// ListPipelines implements concourse.TeamPipelinesClient.ListPipelines.
// Errors from the caller are returned as is.
func (c *Client) ListPipelines(ctx context.Context) ([]concourse.Pipeline, error) {
	descriptor, err := c.builder.Build(request.ListPipelines, c.team, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.caller.Get(ctx, descriptor.URL, descriptor.Headers)
	if err != nil {
		return nil, err
	}

	return mapping.DecodePipelineList(body(resp), c.team)
}

// GetPipeline implements concourse.TeamPipelinesClient.GetPipeline.
func (c *Client) GetPipeline(ctx context.Context, pipelineName string) (*concourse.Pipeline, error) {
	err := validation.ValidatePipelineName(pipelineName)
	if err != nil {
		return nil, err
	}

	descriptor, err := c.builder.Build(request.GetPipeline, c.team, pipelineName)
	if err != nil {
		return nil, err
	}

	resp, err := c.caller.Get(ctx, descriptor.URL, descriptor.Headers)
	if err != nil {
		return nil, err
	}

	return mapping.DecodePipeline(body(resp), c.team)
}

// DeletePipeline implements concourse.TeamPipelinesClient.DeletePipeline.
// The response body is ignored.
func (c *Client) DeletePipeline(ctx context.Context, pipelineName string) error {
	err := validation.ValidatePipelineName(pipelineName)
	if err != nil {
		return err
	}

	descriptor, err := c.builder.Build(request.DeletePipeline, c.team, pipelineName)
	if err != nil {
		return err
	}

	_, err = c.caller.Delete(ctx, descriptor.URL, descriptor.Headers)

	return err
}

func body(resp *concourse.Response) []byte {
	if resp == nil {
		return nil
	}

	return resp.Body
}
