package main

// Version is the release version stamped into the banner and version command.
const Version = "0.1.0"

func main() {
	Execute()
}
