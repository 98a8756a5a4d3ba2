// Package launcher starts remote-desktop sessions for stored connections.
//
// A launch decrypts the stored password, renders a descriptor file, stages
// the credentials in the OS credential store, spawns the native client and
// arms a one-shot cleanup that removes the staged credentials and the
// descriptor after a configurable delay.
//
// The cleanup delay is not synchronised with the client actually reading the
// descriptor and credentials. If the client is slower than the delay it will
// fall back to prompting for the password.
package launcher
