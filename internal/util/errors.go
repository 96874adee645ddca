package util

import (
	"errors"
	"strings"
)

// ErrPublic is an error whose message is safe to echo back to the user who
// caused it (input validation, mostly). Anything else stays in the logs.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

func (e ErrPublic) Is(v error) bool {
	_, ok := v.(ErrPublic)
	return ok
}

func ConcatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err.Error())
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	return errors.New(strings.Join(filtered, "; "))
}

// ConcatPublicErrors is ConcatErrors with the public marker retained so the
// aggregated message can still be shown to whoever sent the bad input.
func ConcatPublicErrors(errs []error) error {
	err := ConcatErrors(errs)
	if err == nil {
		return nil
	}

	return ErrPublic(err.Error())
}
