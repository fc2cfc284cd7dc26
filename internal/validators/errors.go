package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidFileID        = errors.New("invalid file ID")
	ErrInvalidName          = errors.New("invalid file name")
	ErrInvalidSize          = errors.New("invalid file size")
	ErrInvalidIV            = errors.New("invalid body nonce")
	ErrInvalidAuthTag       = errors.New("invalid authentication tag")
	ErrInvalidOwnerWrap     = errors.New("invalid owner key wrap")
	ErrInvalidEmergencyWrap = errors.New("invalid emergency key wrap")
	ErrBodySizeMismatch     = errors.New("body size does not match declared size")
	ErrInvalidLogin         = errors.New("invalid login")
	ErrInvalidAuthHash      = errors.New("invalid auth hash")
	ErrInvalidSalt          = errors.New("invalid salt")
	ErrInvalidVerifier      = errors.New("verifier must use current scrypt parameters")
	ErrInvalidKeyRecord     = errors.New("invalid encrypted key record")
	ErrMissingLease         = errors.New("rotation lease id is required")
	ErrInvalidCursor        = errors.New("invalid page cursor")
	ErrInvalidLimit         = errors.New("invalid page limit")
)
