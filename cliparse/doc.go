// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse builds the server Config from the environment and flags.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Environment Variables and Flags

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	TOKEN_SECRET   → --token-secret
	PAGE_SIZE      → --page-size
	MAX_PAGE_SIZE  → --max-page-size

CLI flags take precedence over environment variables.

ParseFlags fails when DATABASE_URL or TOKEN_SECRET is missing, or when a page
size is not positive. A default page size above the maximum is lowered to it.
*/
package cliparse
