package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.User.Email)
}

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to gophauth CLI (type 'help' for commands)")

	pingCtx, cancel := a.withTimeout(ctx)
	if err := a.client.Ping(pingCtx); err != nil {
		fmt.Fprintf(a.out, "Warning: %v\n", err)
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}
