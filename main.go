package main

import "cinema-seating/cmd"

var (
	version = "dev"
	commit  = "none"
)

func versionString() string {
	if commit != "none" && commit != "" {
		return version + " (" + commit + ")"
	}
	return version
}

func main() {
	cmd.Execute(versionString())
}
