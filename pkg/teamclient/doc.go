// Package teamclient is the entry point for constructing a pipelines
// client that implements concourse.TeamPipelinesClient.
//
// It validates the configuration, builds the default transport when no
// Caller is supplied and fixes the bearer header for the lifetime of the
// client.
//
// Quick start
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
//	  ctx := context.Background()
//
//	  cli, err := teamclient.NewWithToken("https://ci.example.com/api/v1", concourse.Team{Name: "main"}, "token")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  pipeline, err := cli.GetPipeline(ctx, "deploy-app")
//	  if err != nil { log.Fatal(err) }
//	  _ = pipeline
//	}
//
// # Custom transports
//
// Any value implementing concourse.Caller can be supplied through
// Config.Caller. If it also implements concourse.HeaderProvider and no
// Token is configured, its default headers supply the Authorization header.
package teamclient
