// Package models defines the core domain records shared by the service and
// the client.
//
//   - User: an account identified by a unique username. The literal username
//     "admin" is reserved: it cannot be deleted and never appears as a bill
//     participant.
//   - Bill: a shared expense with a total amount and an ordered list of
//     per-participant shares. Bills are immutable after creation except for
//     the paid flag inside their shares.
//   - Share: one participant's portion of a bill. Share amounts are fixed at
//     creation; only IsPaid transitions, false to true, and only by the
//     share's owner.
//   - Session: the client-held record of the authenticated identity. The
//     IsAdmin flag is a UI hint only; the service re-checks authorization on
//     every privileged request.
package models
