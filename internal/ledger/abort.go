package ledger

import (
	"fmt"
	"strings"

	"github.com/objectledger/custodian/internal/domain"
)

// abortPattern maps a substring of a node abort reason to a taxonomy error
type abortPattern struct {
	substr string
	err    error
}

// Order matters: first match wins
var abortPatterns = []abortPattern{
	{"not the owner", domain.ErrNotOwner},
	{"enotowner", domain.ErrNotOwner},
	{"already exists", domain.ErrAlreadyExists},
	{"ealreadyexists", domain.ErrAlreadyExists},
	{"insufficient", domain.ErrInsufficientBalance},
	{"not yet due", domain.ErrNotYetDue},
	{"enotdue", domain.ErrNotYetDue},
	{"already executed", domain.ErrAlreadyExecuted},
	{"already cancelled", domain.ErrAlreadyCancelled},
	{"enotcreator", domain.ErrUnauthorized},
	{"not the creator", domain.ErrUnauthorized},
	{"not for sale", domain.ErrNotForSale},
	{"enotforsale", domain.ErrNotForSale},
	{"token type mismatch", domain.ErrTokenTypeMismatch},
	{"ewrongtoken", domain.ErrTokenTypeMismatch},
}

// MapAbort translates a node abort reason into the custody error taxonomy.
// Reasons with no recognized pattern become a LedgerRejectedError carrying
// the digest and the raw reason.
func MapAbort(reason string, digest string) error {
	lowered := strings.ToLower(reason)
	for _, p := range abortPatterns {
		if strings.Contains(lowered, p.substr) {
			return fmt.Errorf("%w: %s", p.err, reason)
		}
	}
	return &domain.LedgerRejectedError{Digest: digest, Reason: reason}
}
