// Package dispatcher routes editing intents to the mutation engine.
//
// An Intent describes what the caller wants: a key press, a typed
// character, a formatting command, or a named script transform. The
// Dispatcher maps each intent onto the matching mutation and reports
// whether anything applied, so callers fall back to plain insertion
// when it did not.
//
// Routing is pure with respect to the document: the dispatcher holds
// configuration (indent unit, pairing toggles, marker tables) but never
// document state. The same intent against the same selection state
// always yields the same result.
package dispatcher
