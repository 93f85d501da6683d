package protection

import (
	"context"
	"errors"
	"net"
	"net/mail"
	"strings"
)

var disposableDomains = map[string]struct{}{
	"yopmail.com":       {},
	"yopmail.fr":        {},
	"jetable.org":       {},
	"mailinator.com":    {},
	"guerrillamail.com": {},
	"guerrillamail.net": {},
	"sharklasers.com":   {},
	"10minutemail.com":  {},
	"temp-mail.org":     {},
	"tempmail.com":      {},
	"trashmail.com":     {},
	"throwawaymail.com": {},
	"getnada.com":       {},
	"dispostable.com":   {},
	"maildrop.cc":       {},
	"fakeinbox.com":     {},
	"mailnesia.com":     {},
	"mintemail.com":     {},
	"spamgourmet.com":   {},
	"trbvm.com":         {},
	"mohmal.com":        {},
	"emailondeck.com":   {},
	"moakt.com":         {},
	"tempr.email":       {},
	"discard.email":     {},
	"mytemp.email":      {},
	"burnermail.io":     {},
	"crazymailing.com":  {},
	"spam4.me":          {},
	"grr.la":            {},
}

type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// ParseEmail returns the lowercased domain of a bare address, or false when
// the value is not a single plain address.
func ParseEmail(email string) (string, bool) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}

	at := strings.LastIndex(addr.Address, "@")
	domain := strings.ToLower(addr.Address[at+1:])
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", false
	}

	return domain, true
}

func IsDisposable(domain string) bool {
	_, ok := disposableDomains[strings.ToLower(domain)]
	return ok
}

func hasMX(ctx context.Context, resolver MXResolver, domain string) bool {
	records, err := resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && !dnsErr.IsNotFound {
			// resolver trouble is not the address's fault
			return true
		}
		return false
	}
	return len(records) > 0
}
