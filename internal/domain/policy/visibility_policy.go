package policy

import "strings"

// DefaultReservedDomains is used when RESERVED_DOMAINS is not set.
var DefaultReservedDomains = []string{"mksolution.com"}

// VisibilityPolicy encapsulates the "internal submissions are never
// public" rule. It is evaluated once, at submission time; changing the
// reserved set later does not retroactively flip stored records.
type VisibilityPolicy struct {
	reservedDomains []string
}

func NewVisibilityPolicy(reservedDomains []string) *VisibilityPolicy {
	if len(reservedDomains) == 0 {
		reservedDomains = DefaultReservedDomains
	}
	return &VisibilityPolicy{reservedDomains: reservedDomains}
}

// ComputeVisibility honors the requested value (default true when nil),
// except that reserved-domain authors are always forced private.
func (p *VisibilityPolicy) ComputeVisibility(authorEmail string, requested *bool) bool {
	if p.IsInternal(authorEmail) {
		return false
	}
	if requested == nil {
		return true
	}
	return *requested
}

func (p *VisibilityPolicy) IsInternal(email string) bool {
	lower := strings.ToLower(email)
	for _, domain := range p.reservedDomains {
		if strings.HasSuffix(lower, "@"+strings.ToLower(domain)) {
			return true
		}
	}
	return false
}
