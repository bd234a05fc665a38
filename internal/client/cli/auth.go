package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account. It does
// not log the user in; that is a separate step, matching the API.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if a.session.Register(ctx, name, email, password) {
		printlnFn("Account created. Use 'login' to sign in.")
	} else {
		printlnFn("Registration failed.")
	}
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if a.session.Login(ctx, email, password) {
		printlnFn("Welcome,", a.session.CurrentUser().Name)
	} else {
		printlnFn("Login failed.")
	}
	return nil
}

// Logout drops the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the logged-in user. When the bearer token happens to be
// a JWT its expiry is shown too; the token stays opaque otherwise.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.Name, user.Email))
	if exp, ok := tokenExpiry(a.session.Token()); ok {
		printlnFn("Token expires:", exp.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// tokenExpiry decodes the token as an unverified JWT and extracts the
// exp claim. The claims are not trusted for anything beyond display.
func tokenExpiry(token string) (jwt.NumericDate, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return jwt.NumericDate{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return jwt.NumericDate{}, false
	}
	return *exp, true
}
