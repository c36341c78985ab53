// Package cli is the mediaup command-line front end. It wires the upload
// engine to the gRPC client and the local session store, then either uploads
// the files named on the command line or runs an interactive shell.
package cli
