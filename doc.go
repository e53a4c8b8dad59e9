// Package stars looks up the GitHub stargazers count of a list of
// repositories and reports them, most starred first, as a table or a
// markdown list.
//
// Lookups are made one at a time with a fixed pause before each request.
// That keeps an unauthenticated caller under GitHub's rate limit for lists
// of modest size, and nothing cleverer is attempted: there is no retry, no
// backoff and no caching between runs. A repository that cannot be looked up
// still gets a line in the report, with zero stars and the reason in place
// of its link.
package stars
