// Package protection gates the authentication endpoints against bots,
// abusive request rates and throwaway sign-up addresses.
package protection

import (
	"anonforum/internal/config"
	"context"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonRateLimit       Reason = "rateLimit"
	ReasonBot             Reason = "bot"
	ReasonEmailInvalid    Reason = "emailInvalid"
	ReasonEmailDisposable Reason = "emailDisposable"
	ReasonEmailNoMX       Reason = "emailNoMx"
)

// Decision is the verdict on one request. DryRun marks a denial that was
// logged but not enforced.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
	DryRun  bool   `json:"dryRun,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

type Policy int

const (
	PolicyDefault Policy = iota
	PolicyAuth
	PolicySignup
)

func (p Policy) String() string {
	switch p {
	case PolicySignup:
		return "signup"
	case PolicyAuth:
		return "auth"
	default:
		return "default"
	}
}

// PolicyFor picks the rule set for a request path.
func PolicyFor(path string) Policy {
	switch strings.TrimSuffix(path, "/") {
	case "/api/auth/register":
		return PolicySignup
	case "/api/auth/login", "/api/auth/refresh-token":
		return PolicyAuth
	default:
		return PolicyDefault
	}
}

// Request is what a decision is made on. Key is the user id when the caller
// is signed in and the client IP otherwise.
type Request struct {
	Path      string
	Key       string
	UserAgent string
	Email     string
}

type Protector interface {
	Protect(ctx context.Context, req Request) Decision
}

type Shield struct {
	cfg         config.Protection
	restrictive *KeyedLimiter
	lax         *KeyedLimiter
	resolver    MXResolver

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewShield starts a sweeper goroutine for idle limiter buckets; call Close
// to stop it. A nil resolver means net.DefaultResolver.
func NewShield(cfg config.Protection, resolver MXResolver) *Shield {
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	s := &Shield{
		cfg:         cfg,
		restrictive: NewKeyedLimiter(cfg.RestrictiveMax, cfg.RestrictiveWindow),
		lax:         NewKeyedLimiter(cfg.LaxMax, cfg.LaxWindow),
		resolver:    resolver,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	go s.sweep(time.Minute)

	return s
}

func (s *Shield) sweep(every time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.restrictive.Sweep()
			s.lax.Sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Shield) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

func (s *Shield) Protect(ctx context.Context, req Request) Decision {
	policy := PolicyFor(req.Path)
	decision := s.evaluate(ctx, policy, req)

	if decision.Allowed {
		return decision
	}

	if s.cfg.DryRun {
		log.Printf("[protection] refus simulé (%s) sur %s pour %s : %s", policy, req.Path, req.Key, decision.Reason)
		decision.Allowed = true
		decision.DryRun = true
		return decision
	}

	log.Printf("[protection] requête refusée (%s) sur %s pour %s : %s", policy, req.Path, req.Key, decision.Reason)
	return decision
}

func (s *Shield) evaluate(ctx context.Context, policy Policy, req Request) Decision {
	if IsBot(req.UserAgent) {
		return deny(ReasonBot)
	}

	limiter := s.lax
	if policy != PolicyDefault {
		limiter = s.restrictive
	}
	if !limiter.Allow(policy.String() + ":" + req.Key) {
		return deny(ReasonRateLimit)
	}

	if policy == PolicySignup && req.Email != "" {
		return s.checkEmail(ctx, req.Email)
	}

	return allow()
}

func (s *Shield) checkEmail(ctx context.Context, email string) Decision {
	domain, ok := ParseEmail(email)
	if !ok {
		return deny(ReasonEmailInvalid)
	}

	if IsDisposable(domain) {
		return deny(ReasonEmailDisposable)
	}

	if s.cfg.CheckMX {
		lookupCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if !hasMX(lookupCtx, s.resolver, domain) {
			return deny(ReasonEmailNoMX)
		}
	}

	return allow()
}
