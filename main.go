package main

import (
	"context"
	"os"

	"car_rental_manager/app"
	"car_rental_manager/ui"
)

func main() {
	application := app.MustNew()
	defer application.Close()

	console := ui.NewConsole(application.VM, os.Stdin, os.Stdout)
	if err := console.Run(context.Background()); err != nil {
		application.Log.Fatalf("console: %v", err)
	}
}
