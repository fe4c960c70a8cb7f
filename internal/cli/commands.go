package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/saeon/odp-identity/internal/common"
	"github.com/saeon/odp-identity/internal/password"
	"github.com/saeon/odp-identity/internal/server/auth"
)

// message maps the identity error kinds to operator-facing text. The
// service layer itself never formats user-facing messages.
func message(err error) string {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return "No account found for that email address."
	case errors.Is(err, common.ErrAccountLocked):
		return "The account is temporarily locked."
	case errors.Is(err, common.ErrIncorrectPassword):
		return "Incorrect password."
	case errors.Is(err, common.ErrAccountDisabled):
		return "The account has been deactivated."
	case errors.Is(err, common.ErrEmailNotVerified):
		return "The email address has not been verified yet."
	case errors.Is(err, common.ErrEmailInUse):
		return "That email address is already in use."
	case errors.Is(err, common.ErrPasswordComplexity):
		return "The password does not meet the minimum complexity requirements."
	case errors.Is(err, common.ErrTokenExpired):
		return "The link token has expired."
	case errors.Is(err, common.ErrInvalidToken):
		return "The link token is invalid."
	default:
		return "Error: " + err.Error()
	}
}

func (a *App) Signup(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email address", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	pw, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(pw)

	if err := a.identity.ValidateSignup(ctx, email, string(pw)); err != nil {
		fmt.Println(message(err))
		return
	}

	user, err := a.identity.CreateAccount(ctx, email, string(pw))
	if err != nil {
		fmt.Println(message(err))
		return
	}

	token, err := auth.GenerateLinkToken(user.Email, auth.PurposeVerifyEmail,
		[]byte(a.config.SecretKey), a.config.VerificationTokenValidityDuration)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Account created:", user.ID)
	fmt.Println("Verification token:", token)
}

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email address", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	pw, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(pw)

	user, err := a.identity.ValidateLogin(ctx, email, string(pw))
	if err != nil {
		fmt.Println(message(err))
		return
	}

	fmt.Println("Login OK:", user.ID)
}

func (a *App) AutoLogin(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: autologin <user-id>")
		return
	}

	user, err := a.identity.ValidateAutoLogin(ctx, args[0])
	if err != nil {
		fmt.Println(message(err))
		return
	}

	fmt.Println("Auto-login OK:", user.Email)
}

func (a *App) Verify(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: verify <token>")
		return
	}

	email, err := auth.GetEmailFromLinkToken(args[0], auth.PurposeVerifyEmail, []byte(a.config.SecretKey))
	if err != nil {
		fmt.Println(message(err))
		return
	}

	user, err := a.identity.ValidateEmailVerification(ctx, email)
	if err != nil {
		fmt.Println(message(err))
		return
	}

	if err := a.identity.SetVerified(ctx, user, true); err != nil {
		fmt.Println(message(err))
		return
	}

	fmt.Println("Email verified:", user.Email)
}

func (a *App) Forgot(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email address", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	user, err := a.identity.ValidateForgotPassword(ctx, email)
	if err != nil {
		fmt.Println(message(err))
		return
	}

	token, err := auth.GenerateLinkToken(user.Email, auth.PurposeResetPassword,
		[]byte(a.config.SecretKey), a.config.ResetTokenValidityDuration)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Reset token:", token)
}

func (a *App) Reset(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: reset <token>")
		return
	}

	email, err := auth.GetEmailFromLinkToken(args[0], auth.PurposeResetPassword, []byte(a.config.SecretKey))
	if err != nil {
		fmt.Println(message(err))
		return
	}

	pw, err := GetPassword("Enter new password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(pw)

	user, err := a.identity.ValidatePasswordReset(ctx, email, string(pw))
	if err != nil {
		fmt.Println(message(err))
		return
	}

	if err := a.identity.SetPassword(ctx, user, string(pw)); err != nil {
		fmt.Println(message(err))
		return
	}

	fmt.Println("Password updated for:", user.Email)
}

func (a *App) CheckPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email address", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	pw, err := GetPassword("Enter candidate password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(pw)

	if password.CheckComplexity(email, string(pw)) {
		fmt.Println("Password meets the complexity requirements.")
	} else {
		fmt.Println(message(common.ErrPasswordComplexity))
	}
}
