// Package cli is the interactive front end of the gophauth client: a small
// REPL with register, login, me and logout commands. Passwords are read
// from the terminal without echo and wiped after use.
package cli
