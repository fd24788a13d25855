// Package redact scrubs embedded credentials and certificate material from
// workflow definitions before they are written to disk.
package redact

import (
	"strings"

	"github.com/PolarWolf314/n8nsync/internal/record"
)

// Replacement markers written in place of sensitive values.
const (
	SecretPlaceholder      = "[PLACEHOLDER_SECRET]"
	CertificatePlaceholder = "[PLACEHOLDER_CERTIFICATE]"
)

// certificateMarker opens every PEM block.
const certificateMarker = "-----BEGIN"

// DefaultKeywords are matched as lowercase substrings of mapping keys.
var DefaultKeywords = []string{
	"password",
	"apikey",
	"token",
	"secret",
	"privatekey",
	"auth",
	"authorization",
	"bearer",
	"credential",
}

// Policy configures which keys are considered sensitive.
type Policy struct {
	// Keywords are matched case-insensitively as substrings of a key.
	Keywords []string
}

// DefaultPolicy returns a Policy using DefaultKeywords.
func DefaultPolicy() Policy {
	return Policy{Keywords: append([]string(nil), DefaultKeywords...)}
}

// WithExtraKeywords returns a copy of p with extra appended.
func (p Policy) WithExtraKeywords(extra ...string) Policy {
	out := Policy{Keywords: append([]string(nil), p.Keywords...)}
	out.Keywords = append(out.Keywords, extra...)
	return out
}

// Report counts the replacements made by a single Redact call.
type Report struct {
	Secrets      int
	Certificates int
}

// Total returns the number of values replaced.
func (r Report) Total() int { return r.Secrets + r.Certificates }

// Add returns the sum of r and o.
func (r Report) Add(o Report) Report {
	return Report{
		Secrets:      r.Secrets + o.Secrets,
		Certificates: r.Certificates + o.Certificates,
	}
}

// Redactor replaces sensitive scalars in a record.Value.
type Redactor struct {
	keywords []string
}

// New builds a Redactor for p. Keywords are lowercased; blank ones are dropped.
func New(p Policy) *Redactor {
	r := &Redactor{}
	for _, k := range p.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			r.keywords = append(r.keywords, k)
		}
	}
	return r
}

// Redact rewrites v in place using the default policy.
func Redact(v *record.Value) Report {
	return New(DefaultPolicy()).Redact(v)
}

// Redact walks v and rewrites sensitive string values in place.
//
// A string stored under a sensitive key becomes SecretPlaceholder unless it
// is blank or a {{ }} expression. Any string holding PEM material becomes
// CertificatePlaceholder regardless of its key, including bare sequence
// elements. Numbers, booleans and nulls are left alone.
func (r *Redactor) Redact(v *record.Value) Report {
	var rep Report
	_ = record.Walk(v, func(key string, keyed bool, v *record.Value) error {
		s, ok := v.AsString()
		if !ok {
			return nil
		}
		switch {
		case s == CertificatePlaceholder || s == SecretPlaceholder:
			// Already scrubbed.
		case IsCertificate(s):
			v.SetString(CertificatePlaceholder)
			rep.Certificates++
		case keyed && r.IsSensitiveKey(key) && !IsExpression(s) && strings.TrimSpace(s) != "":
			v.SetString(SecretPlaceholder)
			rep.Secrets++
		}
		return nil
	})
	return rep
}

// IsSensitiveKey reports whether key contains one of the policy keywords.
func (r *Redactor) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range r.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// IsExpression reports whether s is an n8n expression placeholder such as
// "{{ $json.token }}".
func IsExpression(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{{") && strings.HasSuffix(t, "}}")
}

// IsCertificate reports whether s contains PEM material.
func IsCertificate(s string) bool {
	return strings.Contains(s, certificateMarker)
}
