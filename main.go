package main

import "github.com/frahmantamala/workflow-approval/cmd"

func main() {
	cmd.Execute()
}
