// Package alumni implements the membership directory API for an alumni
// network: account registration and login, JWT issuance and verification,
// and role gated access to profile and event resources.
//
// The authentication core is made of a password hasher (bcrypt), a token
// service (HS256 JWTs), a credential store backed by bun, and a bearer
// token middleware under middleware/jwtware. Everything else in the package
// is the HTTP surface that consumes those pieces.
package alumni
