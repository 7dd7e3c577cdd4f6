// Package core provides the internal implementation of stubby's interception,
// recording, and proxy-building machinery.
package core
