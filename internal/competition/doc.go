// Package competition holds the in-memory graph of a competition: stages,
// groups, matches and breaks, and the teams they refer to.
//
// Derived facts are pulled on demand. Match outcomes are computed when
// scores are set; group and stage completeness, league tables and
// maybe-reachable team sets are cached and invalidated through a
// competition-wide revision counter that every mutation bumps.
//
// Team references are resolved with Resolve, which never fails and returns
// the Unknown team for anything it cannot determine yet, and checked with
// ValidateTeamRef, which is strict and returns a *ValidationError.
//
// A Competition is not safe for concurrent use.
package competition
