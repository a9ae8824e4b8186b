// Reposnap snapshots a GitHub repository into a single markdown document for
// feeding to an LLM.
//
// It fetches the repository tree and every file over the GitHub REST API,
// writes a directory diagram followed by all file contents, and reports how
// many tokens the document costs against common model context windows. Trees
// are cached per repository and invalidated by branch-head commit SHA; blob
// contents are cached per content SHA and never expire.
//
// Usage:
//
//	reposnap snapshot https://github.com/owner/repo
//	reposnap snapshot                  # pick from saved repository URLs
//	reposnap repos list                # manage saved URLs
//	reposnap cache show                # inspect the on-disk caches
//
// A GITHUB_TOKEN environment variable is required.
package main
