package main

import "os"

func main() {
	if len(os.Args) > 3 {
		os.Exit(2) // want "запрещён прямой вызов os.Exit в main.main"
	}
	defer func() {
		os.Exit(1) // want "запрещён прямой вызов os.Exit в main.main"
	}()
	fail()
}

func fail() {
	os.Exit(1)
}
