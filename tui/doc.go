// Package tui implements the terminal chat window.
package tui
