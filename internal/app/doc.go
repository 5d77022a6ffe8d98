// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that turns a Config into
// one or more extraction jobs, decoupled from any specific entrypoint.
package app
