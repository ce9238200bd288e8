package neat

import "errors"

// ErrInputArityMismatch is returned by a phenotype's Evaluate when the
// supplied sensor vector does not have exactly InputSize elements. Per the
// sensor/actuator contract, a mismatch never panics and never returns a
// partial result: callers get an empty output slice, which a Driver maps to
// all-false controls.
var ErrInputArityMismatch = errors.New("neat: sensor vector length does not match input size")

// ErrMalformedSnapshot is returned while loading a Pool snapshot that is not
// valid JSON or that carries a version tag other than 0 on any document.
// Missing fields are not detected: they load as zero values. Loading never
// partially mutates the Pool: the error is returned before any field of the
// destination Pool is touched.
var ErrMalformedSnapshot = errors.New("neat: malformed pool snapshot")

// ErrEmptyPopulation marks breeding an empty species. The source treats
// this as a programmer error (an assertion); BreedChild panics with this
// error as the panic value, rather than returning it, since it signals a bug in
// pool bookkeeping rather than a recoverable runtime condition.
var ErrEmptyPopulation = errors.New("neat: breed_child called on an empty species")
