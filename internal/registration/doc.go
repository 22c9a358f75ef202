// Package registration adds an entity's repository and business bindings to
// the dependency registration file of a solution. Patching is idempotent and
// works on raw text, so everything outside the two inserted lines is kept
// byte for byte.
package registration
