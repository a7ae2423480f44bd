package cli

import (
	"errors"
	"fmt"

	"wikitree/internal/importer"
	"wikitree/internal/model"
	"wikitree/internal/mutate"
)

// usageError is returned for invalid flag combinations.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// describe adds a short hint for errors users can act on.
func describe(err error) error {
	var (
		nf   *mutate.NotFoundError
		ie   importer.ImportError
		verr model.ValidationError
	)
	switch {
	case errors.As(err, &nf):
		return fmt.Errorf("%w (see `wikitree tree show --text` for ids)", err)
	case errors.As(err, &ie):
		return fmt.Errorf("%w (expected lines like \"1.2<TAB>Title\" or \"1.2 Title\")", err)
	case errors.As(err, &verr):
		return err
	}
	return err
}
