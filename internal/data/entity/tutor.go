package entity

import (
	"github.com/google/uuid"
)

// Tutor is the marketplace profile of a teaching user. UserID is nullable:
// imported tutor profiles may exist before the tutor ever signs in.
type Tutor struct {
	Base
	UserID        *uuid.UUID `db:"user_id"`
	Headline      *string    `db:"headline"`
	WalletBalance float64    `db:"wallet_balance"`
}
