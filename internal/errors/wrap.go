package errors

import "fmt"

// Wrap prefixes err with msg while keeping the chain intact for
// errors.Is checks. Returns nil for a nil err so it can wrap return
// values inline:
//
//	return errors.Wrap(store.Lookup(element, face), "reference lookup")
//
// Wrap at package boundaries only, otherwise messages nest too deep.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted prefix:
//
//	return errors.Wrapf(err, "relax %s(%s)", spec.Element, spec.Face)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
