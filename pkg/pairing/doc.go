// Package pairing links <label for> attributes to the id of the input-like
// element they describe when a template does not name the id explicitly.
//
// A Tracker keeps two FIFO queues per field name within the active form scope:
// identifiers handed to labels still waiting for their input, and identifiers
// handed to inputs still waiting for their label. Whichever tag renders second
// consumes the oldest identifier queued by the other side, so the Nth label for
// a name always pairs with the Nth input for that name, regardless of which
// appears first in the document.
//
// A Tracker is owned by a single render and is not safe for concurrent use.
package pairing
