package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password, creates the account and
// keeps the returned session. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.session = session
	fmt.Fprintf(a.out, "Registered as %s\n", session.User.Email)
	return nil
}

// Login prompts for credentials and keeps the session on success. A failed
// login leaves any previous session untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.session = session
	fmt.Fprintf(a.out, "Logged in as %s\n", session.User.Email)
	return nil
}

// Me fetches and prints the current account. A rejected token ends the
// local session.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return fmt.Errorf("not logged in")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Me(ctx, a.session.Token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// expired; log in again
			a.session = nil
		}
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\nname:  %s\nemail: %s\n", user.ID, user.Name, user.Email)
	return nil
}

// Logout forgets the session token. Tokens are stateless, so the server is
// not contacted.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
