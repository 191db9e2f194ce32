package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/mercado/app/models"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
	"github.com/shashiranjanraj/mercado/pkg/event"
)

// AdminRegistry holds the administrator credentials. It never becomes empty
// through Remove.
type AdminRegistry struct {
	admins []models.AdminCredential
	cost   int
	events *event.Bus
}

func NewAdminRegistry(bus *event.Bus, bcryptCost int) *AdminRegistry {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminRegistry{cost: bcryptCost, events: bus}
}

// List returns identities only, in registration order.
func (r *AdminRegistry) List() []models.AdminIdentity {
	out := make([]models.AdminIdentity, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a.Identity())
	}
	return out
}

func (r *AdminRegistry) Len() int { return len(r.admins) }

// Register adds an administrator. The secret is stored as a bcrypt hash.
func (r *AdminRegistry) Register(cpf, secret string) error {
	cred, err := models.NewAdminCredential(cpf, secret)
	if err != nil {
		return err
	}
	if r.index(cred.CPF) >= 0 {
		return pkgerrors.Newf(pkgerrors.CodeDuplicate, "admin %s already registered", cred.CPF).
			WithDetail("cpf", cred.CPF)
	}
	if strings.TrimSpace(secret) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), r.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return pkgerrors.Wrap(pkgerrors.CodeInvalidInput, err, "secret is too long")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash secret")
	}
	cred.Secret = string(hash)
	r.admins = append(r.admins, cred)

	r.events.Fire(event.New(event.AdminRegistered).With("cpf", cred.CPF))
	return nil
}

// Remove deletes an administrator. The last one is protected.
func (r *AdminRegistry) Remove(cpf string) error {
	if len(r.admins) <= 1 {
		return pkgerrors.New(pkgerrors.CodeLastAdminProtected, "the last administrator cannot be removed")
	}
	normalized := models.NormalizeCPF(cpf)
	i := r.index(normalized)
	if i < 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "admin %s not found", cpf).
			WithDetail("cpf", cpf)
	}
	r.admins = append(r.admins[:i], r.admins[i+1:]...)

	r.events.Fire(event.New(event.AdminRemoved).With("cpf", normalized))
	return nil
}

// Authenticate reports whether cpf and secret match a registered admin.
// A malformed cpf fails before any lookup.
func (r *AdminRegistry) Authenticate(cpf, secret string) bool {
	if !models.ValidCPF(cpf) {
		return false
	}
	normalized := models.NormalizeCPF(cpf)
	i := r.index(normalized)
	if i >= 0 && secretMatches(r.admins[i].Secret, secret) {
		return true
	}
	r.events.Fire(event.New(event.AdminLoginFailed).With("cpf", normalized))
	return false
}

// Export returns the full credentials for persistence.
func (r *AdminRegistry) Export() []models.AdminCredential {
	out := make([]models.AdminCredential, len(r.admins))
	copy(out, r.admins)
	return out
}

func (r *AdminRegistry) index(cpf string) int {
	for i, a := range r.admins {
		if a.CPF == cpf {
			return i
		}
	}
	return -1
}

func (r *AdminRegistry) load(admins []models.AdminCredential) error {
	for _, a := range admins {
		if err := a.Validate(); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeCorruptState, err, "invalid admin record").
				WithDetail("cpf", a.CPF)
		}
		if r.index(a.CPF) >= 0 {
			return pkgerrors.Newf(pkgerrors.CodeCorruptState, "duplicate admin %s", a.CPF).
				WithDetail("cpf", a.CPF)
		}
		r.admins = append(r.admins, a)
	}
	return nil
}

// secretMatches compares against a bcrypt hash, or in constant time against a
// plain secret written by older snapshots.
func secretMatches(stored, given string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
