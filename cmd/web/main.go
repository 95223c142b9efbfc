package main

import "b24relay/internal/app"

func main() {
	app.Run()
}
