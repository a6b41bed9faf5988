// Package concourse provides types and interfaces for working with the
// team-scoped pipeline endpoints of a Concourse-style CI API.
//
// # Overview
//
// The package defines the wire representation of a pipeline (PipelineAPI),
// the caller-facing representation (Pipeline), the TeamPipelinesClient
// interface and the Caller capability the client uses to reach the API.
// A concrete client is provided by the teamclient package:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/concourse-client/pkg/concourse"
//	  "github.com/fivetwenty-io/concourse-client/pkg/teamclient"
//	)
//
//	func example() {
//	  cli, err := teamclient.New(&concourse.Config{
//	    APIURL: "https://ci.example.com/api/v1",
//	    Team:   &concourse.Team{ID: 1, Name: "main"},
//	    Token:  "token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  pipelines, err := cli.ListPipelines(context.Background())
//	  if err != nil { log.Fatal(err) }
//	  _ = pipelines
//	}
//
// # Errors
//
// Invalid constructor or method arguments produce a *ValidationError before
// any request is sent. Failures of the Caller are returned unchanged; with
// the default transport these are *HTTPError values for non-2xx responses,
// which IsNotFound, IsUnauthorized and IsForbidden inspect. Payloads that
// cannot be mapped produce a *RepresentationError.
package concourse
