package main

import "task-assign-system.com/task-assign-system/cmd"

func main() {
	cmd.Execute()
}
