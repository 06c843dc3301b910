package records

import (
	"strings"
	"time"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// SecurityPolicy is the RFC 9116 security.txt record.
type SecurityPolicy struct {
	Contacts           []string
	Expires            time.Time
	Encryption         string
	Canonical          string
	Policy             string
	Acknowledgments    string
	PreferredLanguages []string
	Hiring             string

	// now is the clock used by Validate for the expires-in-the-future check;
	// tests inject a fixed instant.
	now func() time.Time
}

// NewSecurityPolicy builds a security.txt record from front matter.
// Required keys: security_contact (comma-separated, at least one entry) and
// security_expires (RFC 3339).
func NewSecurityPolicy(meta Metadata, site *Site) (*SecurityPolicy, error) {
	contacts := meta.List("security_contact")
	if len(contacts) == 0 {
		return nil, errors.MissingField("security_contact")
	}
	rawExpires := meta.Get("security_expires")
	if rawExpires == "" {
		return nil, errors.MissingField("security_expires")
	}
	expires, err := validate.Date("security_expires", rawExpires)
	if err != nil {
		return nil, err
	}

	return &SecurityPolicy{
		Contacts:           contacts,
		Expires:            expires,
		Encryption:         meta.Get("security_encryption"),
		Canonical:          meta.Get("security_canonical"),
		Policy:             meta.Get("security_policy"),
		Acknowledgments:    meta.Get("security_acknowledgments"),
		PreferredLanguages: meta.List("security_languages"),
		Hiring:             meta.Get("security_hiring"),
		now:                time.Now,
	}, nil
}

// Validate re-checks the RFC 9116 invariants: at least one contact, a future
// expiry, and URL-valued fields that actually parse as URLs.
func (s *SecurityPolicy) Validate() error {
	var errs error
	if len(s.Contacts) == 0 {
		errs = multierr.Append(errs, errors.MissingField("security_contact"))
	}
	for _, c := range s.Contacts {
		if err := validContact(c); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	if s.Expires.IsZero() {
		errs = multierr.Append(errs, errors.MissingField("security_expires"))
	} else if !s.Expires.After(clock()) {
		errs = multierr.Append(errs, errors.InvalidValue("security_expires", s.Expires.Format(time.RFC3339), "expiry must be in the future"))
	}
	for field, value := range map[string]string{
		"security_encryption":      s.Encryption,
		"security_canonical":       s.Canonical,
		"security_policy":          s.Policy,
		"security_acknowledgments": s.Acknowledgments,
		"security_hiring":          s.Hiring,
	} {
		if value == "" {
			continue
		}
		if _, err := validate.URL(field, value); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for _, lang := range s.PreferredLanguages {
		if _, err := validate.LanguageCode("security_languages", lang); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// validContact accepts https URLs and mailto:/tel: URIs per RFC 9116 §2.5.3.
func validContact(contact string) error {
	if strings.HasPrefix(contact, "mailto:") || strings.HasPrefix(contact, "tel:") {
		if len(contact) <= strings.Index(contact, ":")+1 {
			return errors.InvalidValue("security_contact", contact, "contact URI is empty")
		}
		return nil
	}
	_, err := validate.URL("security_contact", contact)
	return err
}
