package rest

import "github.com/jmalloc/twelf/src/twelf"

func logRequest(
	logger twelf.Logger,
	method string,
	path string,
	status int,
) {
	logger.Debug(
		"api %s %s responded with status %d",
		method,
		path,
		status,
	)
}
