package middleware

import (
	"anonforum/internal/protection"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// peekLimit caps how much of a sign-up body is read to find the email.
const peekLimit = 64 << 10

var denialMessages = map[protection.Reason]string{
	protection.ReasonRateLimit:       "Trop de requêtes, veuillez patienter",
	protection.ReasonBot:             "Requête automatisée détectée",
	protection.ReasonEmailInvalid:    "Adresse email invalide",
	protection.ReasonEmailDisposable: "Les adresses email jetables ne sont pas acceptées",
	protection.ReasonEmailNoMX:       "Ce domaine ne peut pas recevoir d'email",
}

var errBodyTooLarge = errors.New("corps de requête trop volumineux")

// TrustedProxies are the networks allowed to report the client address
// through X-Forwarded-For or X-Real-IP.
type TrustedProxies []*net.IPNet

// ParseTrustedProxies accepts bare IPs and CIDRs.
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			_, network, err := net.ParseCIDR(entry)
			if err != nil {
				return nil, fmt.Errorf("proxy de confiance invalide %q : %w", entry, err)
			}
			out = append(out, network)
			continue
		}

		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("proxy de confiance invalide %q", entry)
		}
		bits := 8 * net.IPv6len
		if ip4 := ip.To4(); ip4 != nil {
			ip, bits = ip4, 8*net.IPv4len
		}
		out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return out, nil
}

func (t TrustedProxies) Contains(ip net.IP) bool {
	for _, network := range t {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ProtectionMiddleware consults p before the handler runs. It must sit after
// AuthMiddleware so signed-in callers are keyed by user id.
func ProtectionMiddleware(p protection.Protector, trusted TrustedProxies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := protection.Request{
				Path:      r.URL.Path,
				Key:       callerKey(r, trusted),
				UserAgent: r.UserAgent(),
			}

			if protection.PolicyFor(r.URL.Path) == protection.PolicySignup {
				email, err := peekEmail(r)
				if errors.Is(err, errBodyTooLarge) {
					writeError(w, "Requête trop volumineuse", http.StatusRequestEntityTooLarge, nil)
					return
				}
				req.Email = email
			}

			decision := p.Protect(r.Context(), req)
			if !decision.Allowed {
				status := http.StatusForbidden
				if decision.Reason == protection.ReasonRateLimit {
					status = http.StatusTooManyRequests
				}
				message, ok := denialMessages[decision.Reason]
				if !ok {
					message = "Requête refusée"
				}
				writeError(w, message, status, map[string]string{"reason": string(decision.Reason)})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request, trusted TrustedProxies) string {
	if id := IdentityFrom(r.Context()); id.IsAuthenticated {
		return "user:" + id.UserID
	}
	return "ip:" + ClientIP(r, trusted)
}

// ClientIP returns the socket address unless the peer is a trusted proxy.
// Behind one, X-Forwarded-For is walked from the right and the first
// untrusted hop wins; X-Real-IP is the fallback.
func ClientIP(r *http.Request, trusted TrustedProxies) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	peerIP := net.ParseIP(peer)
	if peerIP == nil || !trusted.Contains(peerIP) {
		return peer
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				break
			}
			if !trusted.Contains(ip) {
				return ip.String()
			}
		}
	}

	if realIP := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); realIP != nil {
		return realIP.String()
	}

	return peer
}

type peekedBody struct {
	io.Reader
	io.Closer
}

// peekEmail reads the JSON body for an "email" field and puts the bytes back
// in front of whatever was not read.
func peekEmail(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, peekLimit+1))
	r.Body = peekedBody{Reader: io.MultiReader(bytes.NewReader(raw), r.Body), Closer: r.Body}
	if err != nil {
		return "", nil
	}
	if len(raw) > peekLimit {
		return "", errBodyTooLarge
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", nil
	}
	return payload.Email, nil
}
