// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves requester identities and generates identity keys.

# Bearer Tokens

Requests authenticate with an HS256 JWT in the Authorization header:

	token, err := auth.IssueToken(secret, "account-42", false, time.Hour)
	requester, err := auth.ParseToken(secret, token)

The subject is the account id. Tokens with the staff claim resolve to the
admin role; all other valid tokens resolve to the authenticated role.
Requests without a token are anonymous. Credentials themselves are managed
elsewhere; this package only verifies what it is handed.

# Identity Keys

Actors and sessions get a random 128-bit key (UUIDv4) when created:

	key := auth.GenerateIdentityKey()

Keys never change after creation; see package validation.
*/
package auth
