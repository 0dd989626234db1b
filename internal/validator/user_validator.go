package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go-user-account-api/internal/domain"
)

const (
	nameMinLength     = 3
	nameMaxLength     = 100
	passwordMinLength = 6
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateForCreation checks a creation request where every field is
// required. It never fails hard: the result is an ordered list of
// human-readable problems, empty when the request is valid.
func ValidateForCreation(req *domain.UserRequest) []string {
	if req == nil {
		return []string{"Request body cannot be null"}
	}
	var errs []string
	errs = append(errs, validateName(req.Name)...)
	errs = append(errs, validateEmail(req.Email)...)
	errs = append(errs, validatePassword(req.Password, true)...)
	errs = append(errs, validateRole(req.Role)...)
	return errs
}

// ValidateForUpdate applies the same per-field rules, but only to fields
// actually present in the request. An empty password counts as absent.
func ValidateForUpdate(req *domain.UserRequest) []string {
	if req == nil {
		return []string{"Request body cannot be null"}
	}
	var errs []string
	if req.Name != nil {
		errs = append(errs, validateName(req.Name)...)
	}
	if req.Email != nil {
		errs = append(errs, validateEmail(req.Email)...)
	}
	if req.Password != nil && *req.Password != "" {
		errs = append(errs, validatePassword(req.Password, false)...)
	}
	if req.Role != nil {
		errs = append(errs, validateRole(req.Role)...)
	}
	return errs
}

func ValidateID(id int64) []string {
	if id <= 0 {
		return []string{"ID must be a positive number"}
	}
	return nil
}

func validateName(name *string) []string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return []string{"Name is required"}
	}
	var errs []string
	// character counts, not bytes: multibyte names must measure the same
	// as their ASCII equivalents
	trimmed := strings.TrimSpace(*name)
	if utf8.RuneCountInString(trimmed) < nameMinLength {
		errs = append(errs, fmt.Sprintf("Name must be at least %d characters long", nameMinLength))
	}
	if utf8.RuneCountInString(trimmed) > nameMaxLength {
		errs = append(errs, fmt.Sprintf("Name must not exceed %d characters", nameMaxLength))
	}
	return errs
}

func validateEmail(email *string) []string {
	if email == nil || strings.TrimSpace(*email) == "" {
		return []string{"Email is required"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(*email)) {
		return []string{"Email format is invalid"}
	}
	return nil
}

func validatePassword(password *string, required bool) []string {
	if password == nil || *password == "" {
		if required {
			return []string{"Password is required"}
		}
		return nil
	}
	if utf8.RuneCountInString(*password) < passwordMinLength {
		return []string{fmt.Sprintf("Password must be at least %d characters long", passwordMinLength)}
	}
	return nil
}

// Only ADMIN and USER are assignable; legacy roles read back fine but can
// no longer be handed out.
func validateRole(role *string) []string {
	if role == nil {
		return []string{"Role is required"}
	}
	r, ok := domain.ParseRole(*role)
	if !ok || !r.Assignable() {
		return []string{fmt.Sprintf("Role must be one of: %s, %s", domain.RoleAdmin, domain.RoleUser)}
	}
	return nil
}
