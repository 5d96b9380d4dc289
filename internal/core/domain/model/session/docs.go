// Package session provides the domain model for ephemeral scanning sessions:
// the handshake by which a mobile scanning device is paired with a stationary
// actor before it may submit scans.
//
// State machine per session:
//
//	(start) --create--> Pending --join--> Queued --connect--> Connected --end--> Ended
//	Pending/Queued --end--> Ended
//
// Join records a device name (Pending -> Queued, or re-records it while
// Queued); joining later states re-announces the device without changing
// state. Connect is the authorization gate: it transitions to Connected
// unconditionally and is idempotent. Only Connected sessions may submit
// scans. Ended sessions are removed from the active set entirely.
package session
