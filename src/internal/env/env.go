package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Int parses and validates a non-negative integer from the environment
// variable named v. ok is false if v is undefined.
func Int(v string) (n int, ok bool, err error) {
	s := os.Getenv(v)
	if s == "" {
		return 0, false, nil
	}

	u, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be a non-negative integer", v)
	}

	return int(u), true, nil
}

// Duration parses and validates a non-zero duration in milliseconds from
// the environment variable named v. ok is false if v is undefined.
func Duration(v string) (d time.Duration, ok bool, err error) {
	s := os.Getenv(v)
	if s == "" {
		return 0, false, nil
	}

	u, err := strconv.ParseUint(s, 10, 63)
	if err != nil || u == 0 {
		return 0, false, fmt.Errorf("%s must be a non-zero duration (in milliseconds)", v)
	}

	return time.Duration(u) * time.Millisecond, true, nil
}

// Bool parses and validates a boolean string from the environment variable
// named v. ok is false if v is undefined.
func Bool(v string) (b bool, ok bool, err error) {
	switch os.Getenv(v) {
	case "true":
		return true, true, nil
	case "false":
		return false, true, nil
	case "":
		return false, false, nil
	default:
		return false, false, fmt.Errorf("%s must be 'true' or 'false'", v)
	}
}
