// Package logstream retrieves the logs of a finished build as a lazy
// sequence of text chunks, ordered by task and then by command.
package logstream

import (
	"context"
	"fmt"
	"iter"

	"cirrus-run/src/api"
	"cirrus-run/src/queries"
)

// API is the slice of the transport the streamer needs: one query for the
// task/command tree and raw GETs for the log bodies.
type API interface {
	Query(ctx context.Context, query string, params map[string]interface{}) (map[string]interface{}, error)
	Get(ctx context.Context, url string) (*api.RawResponse, error)
}

// Stream fetches the build's task/command tree and returns a finite,
// non-restartable sequence of text chunks: a header per task, then per
// command a header followed by the downloaded log body. Log downloads are
// single best-effort attempts; a failed download yields a placeholder chunk
// instead of aborting the rest of the stream.
func Stream(ctx context.Context, client API, logBaseURL, buildID string) (iter.Seq[string], error) {
	reply, err := client.Query(ctx, queries.BuildTasksQuery, map[string]interface{}{
		"build": buildID,
	})
	if err != nil {
		return nil, err
	}
	tasks, err := queries.BuildTasks(reply)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		for _, task := range tasks {
			if !yield(fmt.Sprintf("\n## Task: %s", task.Name)) {
				return
			}
			for _, command := range task.Commands {
				if !yield(fmt.Sprintf("\n## Task instruction: %s", command)) {
					return
				}
				url := fmt.Sprintf("%s/task/%s/logs/%s.log", logBaseURL, task.ID, command)
				resp, err := client.Get(ctx, url)
				chunk := ""
				if err == nil && resp.StatusCode == 200 {
					chunk = resp.Body
				} else {
					chunk = fmt.Sprintf("Unable to fetch url: %s", url)
				}
				if !yield(chunk) {
					return
				}
			}
		}
	}, nil
}
