package main

import (
	"go-bank-simulator/app"
)

func main() {
	app.Run()
}
