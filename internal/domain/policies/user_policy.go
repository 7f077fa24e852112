package policies

import (
	"invest-desk.backend/internal/domain/entities"
)

// UserPolicy decides who may act on user records.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy {
	return &UserPolicy{}
}

// ViewAny allows any authenticated user to browse the user list.
func (p *UserPolicy) ViewAny(caller *entities.User) bool {
	return caller != nil
}

// View allows any authenticated user to see a profile.
func (p *UserPolicy) View(caller *entities.User, _ *entities.User) bool {
	return caller != nil
}

// Create allows any authenticated user; routes layer additionally gates
// user creation to admins.
func (p *UserPolicy) Create(caller *entities.User) bool {
	return caller != nil
}

// Update allows users to change their own profile only.
func (p *UserPolicy) Update(caller *entities.User, target *entities.User) bool {
	return caller != nil && caller.ID == target.ID
}

// Delete is denied for every caller, including self. Deletion of users is
// deliberately blocked even where the routing layer would allow admins in.
func (p *UserPolicy) Delete(_ *entities.User, _ *entities.User) bool {
	return false
}

// Restore is denied for every caller.
func (p *UserPolicy) Restore(_ *entities.User, _ *entities.User) bool {
	return false
}

// ForceDelete is denied for every caller.
func (p *UserPolicy) ForceDelete(_ *entities.User, _ *entities.User) bool {
	return false
}
