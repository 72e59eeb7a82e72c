package main

import "github.com/ValentinKolb/tomkv/cmd"

func main() {
	cmd.Execute()
}
