// Package script wraps the embedded ECMAScript engine behind the small
// surface the launcher needs: load source, define namespace functions,
// define types with instance methods, and call an entry point with a value.
//
// Exactly one Runtime exists per process. It is driven from a single
// goroutine and is not safe for concurrent use.
//
// Every failure raised by script code, or by a lookup the script would see as
// a name error, is returned as *Exception carrying the engine's diagnostic.
package script
