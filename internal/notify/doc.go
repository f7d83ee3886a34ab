// Package notify streams build progress to a socket.io server. The Notifier
// is an extension handler: installed on top of a session stack it overrides
// the build and target events, emits them to the server and then defers to
// the handlers beneath it.
package notify
