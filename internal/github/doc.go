// Package github is a thin client for the GitHub REST API endpoints the
// snapshot engine needs: default-branch lookup, branch-head SHA, recursive
// tree listing, and blob content. Authentication uses a bearer token from
// GITHUB_TOKEN; GITHUB_API_URL overrides the API base URL.
package github
