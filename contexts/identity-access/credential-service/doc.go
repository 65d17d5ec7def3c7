// Package credential implements the credential service inside quill:
// password hashing, bearer token issuance/decoding and route policy evaluation.
//
// Layering:
// - domain: route policies, policy engine, errors
// - application: commands/queries using explicit ports
// - ports: stable boundaries for hashing, token codecs and revocation
// - adapters: concrete bcrypt, jwt, memory and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
//   - The guard is state-free: nothing in this module mutates persisted state.
//   - Ownership predicates come from contracts/identity/v1 so controllers in other
//     modules evaluate the same rules as the guard.
package credential
