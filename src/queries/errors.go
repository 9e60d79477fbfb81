package queries

// QueryError is returned when a query executes successfully but the reply is
// missing the expected data, e.g. a repository lookup for a repo that does
// not exist.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}
