package user

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ecoone/campus/core"
)

var (
	validRoleTag  = "validrole"
	validRoleText = "invalid role"

	// password policy
	pwdMinLen     = 6
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to user attributes"
)

func init() {
	_ = core.Validate.RegisterValidation(validRoleTag, validRoleValidation)
	core.RegisterCustomTranslation(validRoleTag, validRoleText)

	core.Validate.RegisterStructValidation(newUserStructValidation, NewUser{})
	core.RegisterCustomTranslation(pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(pwdAttrSimTag, pwdAttrSimText)
}

// Validate cleans and validates the sign-up payload.
func (nu *NewUser) Validate() error {
	nu.Username = core.CleanString(nu.Username)
	nu.Password = core.CleanString(nu.Password)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Phone = core.CleanString(nu.Phone)
	return core.Validate.Struct(nu)
}

// Custom Validators

// validRoleValidation checks that the provided role is one of AllRoles.
func validRoleValidation(fl validator.FieldLevel) bool {
	return ValidRole(fl.Field().String())
}

// newUserStructValidation applies the password policy to NewUser:
// - minLen: 6
// - no whitespace
// - no username/email similarity
func newUserStructValidation(sl validator.StructLevel) {
	nu, ok := sl.Current().Interface().(NewUser)
	if !ok {
		return
	}
	pwd := nu.Password
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	if len(pwd) < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
	}

	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	lpwd := strings.ToLower(pwd)
	if getRatio(lpwd, strings.ToLower(nu.Username)) >= pwdMaxSim ||
		getRatio(lpwd, strings.ToLower(nu.Email)) >= pwdMaxSim {
		reportErr(pwdAttrSimTag)
	}
}
