package main

import "okta-import/cmd"

func main() {
	cmd.Execute()
}
