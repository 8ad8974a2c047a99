// Package domain contains the core values and errors of foldership.
//
// It has no dependencies on infrastructure (HTTP, file system, logging).
//
//   - [Delivery]: one attempt to hand a located file to the recipient
//   - [SubUnit]: an immediate child entry of the watched root
package domain
