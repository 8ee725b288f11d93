package qna

import "github.com/investmetic/investmetic/internal/users"

// Access rules, evaluated on the caller's stored role:
//
//	admin class          -> full access
//	investor class       -> own inquiries only
//	trader class         -> inquiries against own strategies only
//	anything else        -> denied
//
// Admin roles also belong to an ownership class, so the admin branch must be
// taken first; an INVESTOR_ADMIN is never subject to the asker check.

// CanAccess decides whether the caller may read or delete the inquiry.
func CanAccess(caller *users.User, v QuestionView) bool {
	if caller == nil {
		return false
	}
	switch {
	case caller.Role.IsAdminClass():
		return true
	case caller.Role.IsInvestorClass():
		return v.Question.UserID == caller.ID
	case caller.Role.IsTraderClass():
		return v.Strategy != nil && v.Strategy.OwnerID == caller.ID
	default:
		return false
	}
}

// Placeholder strings for unresolved counterpart fields.
const (
	NoNickname = "(no nickname)"
	NoImage    = "(no image)"
)

// Counterpart is the identity disclosed alongside an inquiry.
type Counterpart struct {
	Nickname string
	ImageURL string
}

// DisclosedCounterpart selects which party's profile a projection reveals.
// Investors see the strategy owner; traders see the asker; anyone else
// (the super admin) defaults to the asker. Unlike CanAccess, ownership
// class wins here: an INVESTOR_ADMIN browsing a listing is shown the same
// counterpart an investor would be. Disclosure is independent of the access
// decision and is only computed for inquiries the caller may already see.
func DisclosedCounterpart(role users.Role, v QuestionView) Counterpart {
	var subject *users.User
	switch {
	case role.IsInvestorClass():
		subject = v.Owner
	case role.IsTraderClass():
		subject = v.Asker
	default:
		subject = v.Asker
	}

	c := Counterpart{Nickname: NoNickname, ImageURL: NoImage}
	if subject == nil {
		return c
	}
	if subject.Nickname != "" {
		c.Nickname = subject.Nickname
	}
	if subject.ImageURL != "" {
		c.ImageURL = subject.ImageURL
	}
	return c
}
