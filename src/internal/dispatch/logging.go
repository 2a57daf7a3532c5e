package dispatch

import (
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
)

func logUnknownEvent(
	logger twelf.Logger,
	eventType string,
) {
	logger.Debug("ignored gateway event of unknown type '%s'", eventType)
}

func logMalformedEvent(
	logger twelf.Logger,
	eventType string,
	err error,
) {
	if err != nil {
		logger.Debug("ignored malformed '%s' gateway event: %s", eventType, err)
	} else {
		logger.Debug("ignored malformed '%s' gateway event", eventType)
	}
}

func logUserFetchFailed(
	logger twelf.Logger,
	userID string,
	err error,
) {
	logger.Debug("could not resolve user %s: %s", userID, err)
}

func logHandlerPanic(
	logger twelf.Logger,
	err guilded.HandlerError,
) {
	logger.Log("recovered from %s", err)
}

func logHookPanic(
	logger twelf.Logger,
	reason interface{},
) {
	logger.Log("recovered from panicking error hook: %v", reason)
}

func logHandlersAbandoned(
	logger twelf.Logger,
	grace time.Duration,
) {
	logger.Log("event handlers still running after %s grace period, abandoning", grace)
}
