package records

import (
	"strconv"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// DefaultCNAMETTL is the default record TTL in seconds.
const DefaultCNAMETTL = 3600

// CNAME is the custom-domain record. The domain is stored in normalized
// (punycode) form.
type CNAME struct {
	Domain string
	TTL    uint32
}

// NewCNAME builds a CNAME record from front matter. The required key is
// cname; an optional ttl key overrides the default.
func NewCNAME(meta Metadata, _ *Site) (*CNAME, error) {
	raw := meta.Get("cname")
	if raw == "" {
		return nil, errors.MissingField("cname")
	}
	domain, err := validate.Domain("cname", raw)
	if err != nil {
		return nil, err
	}
	ttl := uint32(DefaultCNAMETTL)
	if v := meta.Get("ttl"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return nil, errors.InvalidValue("ttl", v, "TTL must be a positive integer")
		}
		ttl = uint32(n)
	}
	return &CNAME{Domain: domain, TTL: ttl}, nil
}

// Validate re-checks the domain and TTL invariants.
func (c *CNAME) Validate() error {
	if _, err := validate.Domain("cname", c.Domain); err != nil {
		return err
	}
	if c.TTL == 0 {
		return errors.InvalidValue("ttl", "0", "TTL must be greater than zero")
	}
	return nil
}
