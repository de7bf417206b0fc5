// cmd/stagetrack/main.go
//
// Entry point for the stagetrack CLI. It shows a loan application's progress
// as a timeline or a stepper, either interactively (run) or as a single frame
// printed to stdout (render).

package main

func main() {
	Execute()
}
