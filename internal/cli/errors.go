package cli

import (
	"errors"
	"fmt"

	"quire-cli/internal/status"
)

var (
	ErrDoctorIssuesFound = errors.New("doctor found integrity violations")
	errBodySource        = errors.New("pass at most one of --text/--file")
)

// parseStatusFlag accepts an empty value as the default (draft).
func parseStatusFlag(v string) (status.Status, error) {
	if v == "" {
		return status.Draft, nil
	}
	st, err := status.Parse(v)
	if err != nil {
		return 0, fmt.Errorf("--status: %w (want one of %s)", err, statusIDs())
	}
	return st, nil
}

func statusIDs() string {
	out := ""
	for i, s := range status.All() {
		if i > 0 {
			out += "|"
		}
		out += s.String()
	}
	return out
}
