// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package visibility decides which entities a requester may observe or act on.

Each resource has an ordered list of predicates for list reads and another
for detail reads. A list drops every candidate that fails any predicate. A
detail read that fails returns apperr.ErrForbidden, which callers surface
separately from not found.

Predicates:

  - PublishedOrStaff: the survey window contains today, or the requester is an administrator
  - NotSyntheticTextOption: hides the placeholder option of text questions
  - OwnerOrAdmin: no linked account, the requester's own account, or an administrator
*/
package visibility
