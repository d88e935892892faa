// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the interactive lifecycle (ask the viewer's
// age, list the movies they may watch, play the selected one), decoupled from
// any specific entrypoint like a CLI.
package app
