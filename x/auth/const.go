package auth

const (
	CredentialHeader = "cu-credential"
	SignatureHeader  = "cu-signature"
	TimestampHeader  = "cu-timestamp"
)

// maxClockSkew bounds how stale a signed request may be, in seconds.
const maxClockSkew = 300

type Principal int

const (
	ISADMIN = iota
	ISKNOWN
	ISSYSTEM
)
