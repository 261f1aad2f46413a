package main

import "github.com/sysread/fnord/cmd"

func main() {
	cmd.Execute()
}
