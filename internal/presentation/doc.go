// Package presentation holds the per-screen state holders.
//
// A screen owns one Store with its mutable snapshot. Use-case streams and user
// intents change the snapshot only through Store.Update, which serialises
// read-modify-write. State(ctx) exposes a read-only projection of the
// snapshot into one of the UI variants in states.go. One-shot outcomes such as
// "book saved" go through Events and are consumed exactly once.
//
// Every screen runs its subscriptions in a Scope; Close cancels them and waits
// for in-flight work.
//
// Failures are handled the same way everywhere: they are logged, folded into
// the snapshot and shown through the Failed or ItemFailed variant when loading
// fails, or through the Err field of the view when a write fails. Nothing is
// retried automatically.
package presentation
