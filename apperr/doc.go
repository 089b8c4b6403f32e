// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the failure taxonomy shared by the validation engine,
the visibility filter and the query resolver.

# Kinds and Codes

Every failure carries a Kind (who is at fault and how to surface it) and a
Code (the precise reason):

	Validation  InvalidDateOrder, InvalidChoice, InvalidField, CardinalityExceeded
	Query       EmptyQueryParams, UnrecognizedQueryParam, InvalidQueryValue, InvalidPageToken
	Permission  Forbidden, Unauthenticated
	NotFound    NotFound
	Internal    Internal

Codes compare with errors.Is:

	if errors.Is(err, apperr.ErrCardinalityExceeded) {
		// answer already recorded
	}

# HTTP Mapping

HTTPStatus maps a failure to a response status. CardinalityExceeded is a
conflict (409), the other validation and query codes are bad requests (400),
Forbidden is 403 and distinct from NotFound (404).
*/
package apperr
