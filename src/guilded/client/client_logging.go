package client

import (
	"time"

	"github.com/jmalloc/twelf/src/twelf"
)

func logConnected(
	logger twelf.Logger,
	endpoint string,
	teamConns int,
) {
	if teamConns > 0 {
		logger.Log("connected to %s (+%d team connections)", endpoint, teamConns)
	} else {
		logger.Log("connected to %s", endpoint)
	}
}

func logConnectFailed(
	logger twelf.Logger,
	err error,
) {
	logger.Log("connection attempt failed: %s", err)
}

func logTeamConnectFailed(
	logger twelf.Logger,
	teamID string,
	err error,
) {
	logger.Log("could not open connection for team %s: %s", teamID, err)
}

func logTeamConnectionLost(
	logger twelf.Logger,
	teamID string,
	err error,
) {
	logger.Log("lost connection for team %s: %s", teamID, err)
}

func logDisconnected(
	logger twelf.Logger,
	err error,
) {
	logger.Log("gateway connection lost: %s", err)
}

func logBackoff(
	logger twelf.Logger,
	delay time.Duration,
	failures int,
) {
	if failures > 0 {
		logger.Log("reconnecting in %s (%d consecutive failures)", delay, failures)
	} else {
		logger.Log("reconnecting in %s", delay)
	}
}
