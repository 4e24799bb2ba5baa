package extract

import "errors"

// ErrInvalidFit indicates a file that loaded but whose fit did not
// converge or is corrupt. The file contributes no row; the batch
// continues.
var ErrInvalidFit = errors.New("extract: invalid fit result")
