package main

import "retroquest/cmd/rq/root"

func main() {
	root.Execute()
}
