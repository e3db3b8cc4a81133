// Package atom parses package dependency atoms.
//
// An atom names a package and optionally restricts which versions, slots,
// repositories and use flags satisfy it:
//
//	[!|!!][op]category/package[-version[-rN]][*][:slot[,slot]][::repo][[use,...]]
//
// # Operators
//
// Versions are only allowed together with an operator: <, <=, =, ~, >= or
// >. "=" with a trailing "*" becomes a glob match ([OpGlob]); "~" matches
// any revision and so must not carry one.
//
// # EAPI
//
// [WithEAPI] limits the syntax to a given EAPI. Without it every feature is
// accepted.
//
// # Scope
//
// This package only parses. Comparing versions and matching atoms against
// packages is the resolver's job.
package atom
