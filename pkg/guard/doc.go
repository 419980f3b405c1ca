// Package guard gates protected subtrees on authentication and
// per-subtree exclusion rules.
//
// A guard is an explicit state machine over three states: Checking
// while the current-user lookup is in flight (nothing may render, so
// protected content never flashes before authorization is known),
// Redirecting when the resolved user is excluded or, for
// authentication guards, absent, and Rendering otherwise.
//
// The transition function Evaluate is pure; the Guard type adds
// latest-input-wins bookkeeping so a slow user resolution can never
// overwrite a decision made from fresher inputs.
package guard
