package queries

// Task is a read-only projection of one build task as returned by the
// service. Command and notification order is preserved; it drives log chunk
// order downstream. Nothing here is ever mutated locally.
type Task struct {
	ID            string
	Name          string
	Commands      []string
	Notifications []string
}

// BuildStatus extracts the status and task list from a BuildStatusQuery
// reply. A missing build or status field means the query succeeded but the
// expected data is absent, which is a *QueryError.
func BuildStatus(reply map[string]interface{}) (string, []Task, error) {
	build, ok := reply["build"].(map[string]interface{})
	if !ok || build == nil {
		return "", nil, &QueryError{Message: "build not found"}
	}
	status, ok := build["status"].(string)
	if !ok {
		return "", nil, &QueryError{Message: "build status missing from response"}
	}
	return status, decodeTasks(build["tasks"]), nil
}

// BuildTasks extracts the ordered task/command tree from a BuildTasksQuery
// reply.
func BuildTasks(reply map[string]interface{}) ([]Task, error) {
	build, ok := reply["build"].(map[string]interface{})
	if !ok || build == nil {
		return nil, &QueryError{Message: "build not found"}
	}
	return decodeTasks(build["tasks"]), nil
}

// decodeTasks walks the untyped task list, tolerating absent fields. The
// status query carries notifications only; the tasks query carries ids,
// names and commands only.
func decodeTasks(v interface{}) []Task {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	tasks := make([]Task, 0, len(list))
	for _, item := range list {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		task := Task{}
		task.ID, _ = raw["id"].(string)
		task.Name, _ = raw["name"].(string)
		if commands, ok := raw["commands"].([]interface{}); ok {
			for _, c := range commands {
				if command, ok := c.(map[string]interface{}); ok {
					if name, ok := command["name"].(string); ok {
						task.Commands = append(task.Commands, name)
					}
				}
			}
		}
		if notifications, ok := raw["notifications"].([]interface{}); ok {
			for _, n := range notifications {
				if notification, ok := n.(map[string]interface{}); ok {
					if message, ok := notification["message"].(string); ok {
						task.Notifications = append(task.Notifications, message)
					}
				}
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}
