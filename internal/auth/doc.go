// Package auth validates the bearer tokens carried on smart-home directives.
//
// Two modes are supported, selected by auth.token_mode in config.yaml:
//
//   - accept_all: any non-empty token is accepted. Account linking is
//     handled upstream and the bridge trusts what it is given.
//   - jwt: the token must be an HS256 JWT signed with auth.jwt.secret and,
//     if auth.jwt.issuer is set, issued by that issuer.
//
// GenerateToken mints tokens for the jwt mode, mainly for testing a
// deployment with the CLI.
package auth
