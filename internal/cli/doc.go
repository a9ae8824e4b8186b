// Package cli wires together the Cobra command tree for the reposnap binary.
//
// It defines the root command and all subcommands (snapshot, repos, cache,
// version), binds flags, reads configuration, invokes the snapshot engine,
// and returns deterministic exit codes.
package cli
