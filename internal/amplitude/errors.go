package amplitude

import "errors"

// ErrMalformedTag indicates a non-background wave tag that does not
// follow the fixed-width eJPmL convention. Decoding never truncates or
// guesses: a bad tag is an error, not a shorter tag.
var ErrMalformedTag = errors.New("amplitude: malformed eJPmL tag")
