package cli

import (
	"context"
	"fmt"
	"io"
)

// loginHint is the CLI's Navigator: there is no view to move, so a redirect
// to the login route becomes a hint on stderr.
type loginHint struct {
	out io.Writer
}

func (h loginHint) Navigate(_ context.Context, route string) {
	_, _ = fmt.Fprintf(h.out, "Session expired or invalid (redirected to %s). Run `console login` to sign in again.\n", route)
}
