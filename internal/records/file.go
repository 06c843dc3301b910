package records

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// MaxFileContentBytes bounds the content a File record may carry. Pages are
// in-memory strings; anything beyond this is not page-sized content.
const MaxFileContentBytes = 8 << 20

// File is one content document as seen by the build driver: a sanitized
// relative name plus its raw body.
type File struct {
	Name      string
	Content   string
	Extension string
}

// NewFile builds a File record, sanitizing the relative name.
func NewFile(name, content string) (*File, error) {
	cleaned, err := validate.SanitizePath("name", name)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:      cleaned,
		Content:   content,
		Extension: strings.TrimPrefix(path.Ext(cleaned), "."),
	}, nil
}

// Stem returns the file name without directory or extension.
func (f *File) Stem() string {
	base := path.Base(f.Name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Validate re-checks the path and content-size invariants.
func (f *File) Validate() error {
	var errs error
	if _, err := validate.SanitizePath("name", f.Name); err != nil {
		errs = multierr.Append(errs, err)
	}
	if len(f.Content) > MaxFileContentBytes {
		errs = multierr.Append(errs, errors.InvalidValue("content", fmt.Sprintf("%d bytes", len(f.Content)),
			fmt.Sprintf("content exceeds %d bytes", MaxFileContentBytes)))
	}
	return errs
}
