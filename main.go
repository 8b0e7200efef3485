package main

import "sleeper-league-bot/cli"

func main() {
	cli.Execute()
}
