package entities

// Membership is the guild membership gate for a customer.
// Ready holds exactly when the user is a member and has passed
// membership screening (not pending).
type Membership struct {
	Member  bool
	Pending bool
	Ready   bool
}

func NewMembership(member, pending bool) Membership {
	return Membership{
		Member:  member,
		Pending: member && pending,
		Ready:   member && !pending,
	}
}
