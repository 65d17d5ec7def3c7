// Package contentservice contains the accounts, posts, comments and
// categories of the community content API.
//
// Route-level access decisions live in the credential service guard; this
// module owns the data-dependent ownership checks and the ordered cascades
// that keep persisted records and remote images consistent.
package contentservice
