package service

import "errors"

// ErrStopped indicates that an operation can not be performed because the
// service is stopping or has already stopped.
var ErrStopped = errors.New("service has been stopped")
