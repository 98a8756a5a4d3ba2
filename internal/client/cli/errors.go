package cli

import (
	"errors"

	"github.com/dmitrijs2005/rdpmanager/internal/common"
)

// describeError turns service errors into a line for the user.
func describeError(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, common.ErrDecryption) && errors.Is(err, common.ErrConnection):
		return "cannot decrypt the stored password (was the master password changed?)"
	case errors.Is(err, common.ErrDuplicateName):
		return "a category with this name already exists"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}
