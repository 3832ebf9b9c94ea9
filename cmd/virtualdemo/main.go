// Command virtualdemo drives the virtual list engine through its hosts: an
// OpenGL window (gl), a terminal UI (tui) and a headless benchmark (bench).
//
// Prerequisites for gl:
//
//	devbox shell                 # provides Go + OpenGL/X11 headers
//	go run ./cmd/virtualdemo gl  # open a window with 100k variable-height rows
package main

func main() {
	execute()
}
