package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

const MaxRegistrationPhotoSize = 5_000_000

var loginErrorMessages = map[string]string{
	gap.CodeEmailNotFound:   "No user was found with this email",
	gap.CodeInvalidPassword: "Incorrect password",
	gap.CodeUserDisabled:    "This account has been disabled",
}

const loginFallbackMessage = "An error occurred while signing in"

var registerErrorMessages = map[string]string{
	gap.CodeEmailExists:  "This email address is already associated with an account.",
	gap.CodeInvalidEmail: "The email address is not valid.",
	gap.CodeNotAllowed:   "Account creation is disabled.",
	gap.CodeWeakPassword: "The password is too weak.",
}

// LoginErrorMessage turns a failed login into what the login form shows.
func LoginErrorMessage(err error) string {
	if msg, ok := loginErrorMessages[gap.CodeOf(err)]; ok {
		return msg
	}
	return loginFallbackMessage
}

// RegisterErrorMessage turns a failed registration into what the form shows.
func RegisterErrorMessage(err error) string {
	code := gap.CodeOf(err)
	if strings.Contains(code, "API key not valid") {
		return "Configuration error, please contact the administrator."
	}
	if msg, ok := registerErrorMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("Registration failed: %s", code)
}

type RegistrationForm struct {
	models.Registration
	ConfirmPassword string
}

// ValidateRegistration runs the checks the form does before anything is sent.
func ValidateRegistration(form RegistrationForm) error {
	if form.Password != form.ConfirmPassword {
		return errors.New("Passwords do not match.")
	}
	if form.Photo != nil && len(form.Photo.Content) > MaxRegistrationPhotoSize {
		return errors.New("The photo must not exceed 5MB")
	}
	return nil
}

func Login(ctx context.Context, gw gap.Gateway, visitor, email, password string) (*Session, error) {
	identity, err := gw.LoginWithEmailPassword(ctx, email, password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("An error occurred when signing in...")
		return nil, err
	}
	return Sessions.Begin(ctx, visitor, identity)
}

func Register(ctx context.Context, gw gap.Gateway, visitor string, form RegistrationForm) (*Session, error) {
	identity, err := gw.Register(ctx, form.Registration)
	if err != nil {
		log.Warn().Err(err).Str("email", form.Email).Msg("An error occurred when registering...")
		return nil, err
	}
	return Sessions.Begin(ctx, visitor, identity)
}

// Logout ends the session and drops everything the visitor had loaded.
func Logout(ctx context.Context, session *Session) error {
	if err := Sessions.End(ctx, session); err != nil {
		return err
	}
	if Workspaces != nil {
		Workspaces.Drop(session.VisitorID)
	}
	return nil
}
