package policies

import (
	"invest-desk.backend/internal/domain/entities"
)

// InvestorPolicy decides who may act on investor records. Ownership is the
// whole rule: the user that created an investor is the only one allowed to
// see or change it.
type InvestorPolicy struct{}

func NewInvestorPolicy() *InvestorPolicy {
	return &InvestorPolicy{}
}

// ViewAny allows any authenticated user to browse the investor list.
func (p *InvestorPolicy) ViewAny(caller *entities.User) bool {
	return caller != nil
}

// Create allows any authenticated user to create investor records.
func (p *InvestorPolicy) Create(caller *entities.User) bool {
	return caller != nil
}

// View requires ownership.
func (p *InvestorPolicy) View(caller *entities.User, investor *entities.Investor) bool {
	return caller != nil && caller.ID == investor.UserID
}

// Update requires ownership.
func (p *InvestorPolicy) Update(caller *entities.User, investor *entities.Investor) bool {
	return caller != nil && caller.ID == investor.UserID
}

// Delete requires ownership.
func (p *InvestorPolicy) Delete(caller *entities.User, investor *entities.Investor) bool {
	return caller != nil && caller.ID == investor.UserID
}

// Activate requires ownership.
func (p *InvestorPolicy) Activate(caller *entities.User, investor *entities.Investor) bool {
	return p.Update(caller, investor)
}

// SetPending requires ownership.
func (p *InvestorPolicy) SetPending(caller *entities.User, investor *entities.Investor) bool {
	return p.Update(caller, investor)
}
