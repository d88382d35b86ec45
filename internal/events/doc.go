// Package events provides per-user fan-out of task lifecycle events.
//
// Each user has one logical room. A session joins its owner's room after the
// transport layer has verified the user's identity; publishing to a user
// delivers the event to every session currently in that room and to no one
// else. Delivery is fire-and-forget and at-most-once: events published
// before a session joins are not replayed, and a failed or slow session
// only loses events, it never fails the mutation that produced them.
package events
