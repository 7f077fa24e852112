package policies

import (
	"invest-desk.backend/internal/domain/entities"
)

// LedgerPolicy covers accounts, payments and investments. Mutation of ledger
// records is an admin-role operation; the check lives here so the guarantee
// holds regardless of which route reached the service.
type LedgerPolicy struct{}

func NewLedgerPolicy() *LedgerPolicy {
	return &LedgerPolicy{}
}

// ViewAny allows any authenticated user to read ledger data.
func (p *LedgerPolicy) ViewAny(caller *entities.User) bool {
	return caller != nil
}

// View allows any authenticated user to read a single record.
func (p *LedgerPolicy) View(caller *entities.User) bool {
	return caller != nil
}

// Mutate requires the admin role for create, update, delete, the two
// toggles and the allocation workflow.
func (p *LedgerPolicy) Mutate(caller *entities.User) bool {
	return caller != nil && caller.IsAdmin()
}
