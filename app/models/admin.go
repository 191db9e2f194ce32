package models

import (
	"strings"
	"unicode"

	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

// CPFLength is the number of digits in an administrator identity.
const CPFLength = 11

// AdminCredential pairs an 11-digit CPF with its secret. Secret is either a
// bcrypt hash or, for legacy snapshots, the plain value, which may be empty.
// AdminRegistry.Register is what refuses blank secrets.
type AdminCredential struct {
	CPF    string `field:"cpf"    validate:"len=11,number"`
	Secret string `field:"secret"`
}

// AdminIdentity is what gets shown when listing administrators.
type AdminIdentity struct {
	CPF string
}

// NormalizeCPF drops every non-digit character.
func NormalizeCPF(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r <= unicode.MaxASCII {
			return r
		}
		return -1
	}, raw)
}

// ValidCPF reports whether raw holds exactly 11 digits once normalized.
func ValidCPF(raw string) bool {
	return len(NormalizeCPF(raw)) == CPFLength
}

func NewAdminCredential(cpf, secret string) (AdminCredential, error) {
	normalized := NormalizeCPF(cpf)
	if len(normalized) != CPFLength {
		return AdminCredential{}, pkgerrors.Newf(pkgerrors.CodeInvalidIdentity,
			"cpf must have %d digits, got %d", CPFLength, len(normalized)).
			WithDetail("cpf", cpf)
	}
	c := AdminCredential{CPF: normalized, Secret: secret}
	if err := c.Validate(); err != nil {
		return AdminCredential{}, err
	}
	return c, nil
}

func (c AdminCredential) Validate() error {
	if !ValidCPF(c.CPF) || NormalizeCPF(c.CPF) != c.CPF {
		return pkgerrors.Newf(pkgerrors.CodeInvalidIdentity, "cpf %q is not %d digits", c.CPF, CPFLength)
	}
	return check(pkgerrors.CodeInvalidInput, "admin", c)
}

func (c AdminCredential) Identity() AdminIdentity {
	return AdminIdentity{CPF: c.CPF}
}
