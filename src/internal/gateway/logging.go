package gateway

import "github.com/jmalloc/twelf/src/twelf"

func logDialed(
	logger twelf.Logger,
	endpoint string,
	teamID string,
	resumed bool,
) {
	if teamID != "" {
		logger.Debug(
			"gateway connection established to %s for team %s",
			endpoint,
			teamID,
		)
		return
	}

	if resumed {
		logger.Debug("gateway connection established to %s (resuming)", endpoint)
	} else {
		logger.Debug("gateway connection established to %s", endpoint)
	}
}

func logClosed(
	logger twelf.Logger,
	teamID string,
) {
	if teamID != "" {
		logger.Debug("gateway connection for team %s closed", teamID)
	} else {
		logger.Debug("gateway connection closed")
	}
}
