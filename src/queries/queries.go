package queries

import (
	"context"
	"fmt"
	"time"
)

// API is the slice of the transport these operations need.
type API interface {
	Query(ctx context.Context, query string, params map[string]interface{}) (map[string]interface{}, error)
}

// GetRepo resolves a GitHub owner/name pair to the internal Cirrus CI
// repository id.
func GetRepo(ctx context.Context, api API, owner, repo string) (string, error) {
	reply, err := api.Query(ctx, RepoQuery, map[string]interface{}{
		"owner": owner,
		"repo":  repo,
	})
	if err != nil {
		return "", err
	}

	repository, ok := reply["ownerRepository"].(map[string]interface{})
	if !ok || repository == nil {
		return "", &QueryError{Message: fmt.Sprintf("repo not found: %s/%s", owner, repo)}
	}
	id, ok := repository["id"].(string)
	if !ok {
		return "", &QueryError{Message: fmt.Sprintf("repo id missing from response: %s/%s", owner, repo)}
	}
	return id, nil
}

// CreateBuild schedules a new build for the repository and returns its id.
// The client mutation id is derived from the current time so a retried
// creation request can be deduplicated by the service.
func CreateBuild(ctx context.Context, api API, repoID, branch, config string) (string, error) {
	mutationID := fmt.Sprintf("cirrus-run job %d", time.Now().Unix())
	reply, err := api.Query(ctx, CreateBuildMutation, map[string]interface{}{
		"repo":        repoID,
		"branch":      branch,
		"mutation_id": mutationID,
		"config":      config,
	})
	if err != nil {
		return "", err
	}

	createBuild, ok := reply["createBuild"].(map[string]interface{})
	if !ok || createBuild == nil {
		return "", &QueryError{Message: "createBuild missing from response"}
	}
	build, ok := createBuild["build"].(map[string]interface{})
	if !ok || build == nil {
		return "", &QueryError{Message: "createBuild returned no build"}
	}
	id, ok := build["id"].(string)
	if !ok {
		return "", &QueryError{Message: "createBuild returned no build id"}
	}
	return id, nil
}
