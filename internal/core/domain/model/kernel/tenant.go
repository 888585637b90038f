package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"fulfillment/internal/pkg/errs"
)

const tenantIDMaxLength = 64

var tenantIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ErrTenantIDIsNotConstructed is returned when validating a zero-value TenantID.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError("tenant id must be created via NewTenantID")

// TenantID identifies the restaurant brand owning an order or a zone.
// It is a lowercase slug such as "pizza-roma".
type TenantID struct {
	value string
}

// NewTenantID validates and lowercases a tenant slug.
func NewTenantID(value string) (TenantID, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return TenantID{}, errs.NewValueIsRequiredError("tenant id")
	}
	if len(v) > tenantIDMaxLength {
		return TenantID{}, errs.NewValueIsOutOfRangeError("tenant id length", len(v), 1, tenantIDMaxLength)
	}
	if !tenantIDPattern.MatchString(v) {
		return TenantID{}, errs.NewValueIsInvalidErrorWithCause("tenant id", fmt.Errorf("%q is not a slug", value))
	}
	return TenantID{value: v}, nil
}

func (t TenantID) String() string {
	return t.value
}

func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

func (t TenantID) Validate() error {
	if t.value == "" {
		return ErrTenantIDIsNotConstructed
	}
	return nil
}
