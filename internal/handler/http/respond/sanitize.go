package respond

import (
	"regexp"
)

var (
	// Authorization: Bearer <token>
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)

	// header.payload.signature; applied after bearerPattern so bare tokens are also caught
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)

	// user:password@ inside a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// key=value query parameters that carry credentials
	secretParamPattern = regexp.MustCompile(`(?i)\b(api_key|apikey|key|token|access_token|password|secret)=([^&\s"]+)`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks bearer tokens, JWTs, DSN passwords and secret query parameters in s.
func SanitizeString(s string) string {
	s = bearerPattern.ReplaceAllString(s, "${1}****")
	s = jwtPattern.ReplaceAllString(s, "****")
	s = dbPasswordPattern.ReplaceAllString(s, "://$1:****@")
	s = secretParamPattern.ReplaceAllString(s, "$1=****")
	return s
}
