package loader

import "fmt"

// LoadError reports a document that could not be assembled at all, either
// because the file could not be read or because its front matter is
// malformed. It unwraps to the underlying cause so callers can match
// frontmatter.ErrMalformedDocument and friends.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
