package entities

// PolicyKind enumerates the route-level gates the guard can enforce.
type PolicyKind string

const (
	PolicyAnonymous        PolicyKind = "anonymous"
	PolicyAnyAuthenticated PolicyKind = "any_authenticated"
	PolicyAdminOnly        PolicyKind = "admin_only"
	PolicyOwnerOnly        PolicyKind = "owner_only"
	PolicyOwnerOrAdmin     PolicyKind = "owner_or_admin"
)

// Policy is declared per route. Param names the path parameter holding the
// target account id for owner-based kinds.
type Policy struct {
	Kind  PolicyKind
	Param string
}

func Anonymous() Policy        { return Policy{Kind: PolicyAnonymous} }
func AnyAuthenticated() Policy { return Policy{Kind: PolicyAnyAuthenticated} }
func AdminOnly() Policy        { return Policy{Kind: PolicyAdminOnly} }

func OwnerOnly(param string) Policy {
	return Policy{Kind: PolicyOwnerOnly, Param: param}
}

func OwnerOrAdmin(param string) Policy {
	return Policy{Kind: PolicyOwnerOrAdmin, Param: param}
}

// RequiresAuthentication is false only for anonymous routes.
func (p Policy) RequiresAuthentication() bool {
	return p.Kind != PolicyAnonymous
}

// TargetsAccount reports whether the policy compares the caller with a path parameter.
func (p Policy) TargetsAccount() bool {
	return p.Kind == PolicyOwnerOnly || p.Kind == PolicyOwnerOrAdmin
}
